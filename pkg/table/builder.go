package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ColType is the generic data type the chart endpoint reports per column.
type ColType int

const (
	ColTypeNumeric ColType = iota
	ColTypeString
	ColTypeTemporal
	ColTypeBoolean
)

const (
	fieldResult     = "result"
	fieldData       = "data"
	fieldColnames   = "colnames"
	fieldIndexnames = "indexnames"
	fieldColtypes   = "coltypes"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
}

type Builder struct {
	Logger *zap.SugaredLogger
}

func NewBuilder(logger *zap.SugaredLogger) *Builder {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Builder{Logger: logger}
}

// Build turns a chart data response body into a Table. It returns nil and no
// error when the first result holds no rows.
func (b *Builder) Build(raw []byte) (*Table, error) {
	if !utf8.Valid(raw) {
		return nil, &ParseError{Reason: "response body is not valid UTF-8"}
	}
	if !gjson.ValidBytes(raw) {
		return nil, &ParseError{Reason: "response body is not valid JSON"}
	}

	result := gjson.GetBytes(raw, fieldResult)
	if !result.IsArray() {
		return nil, &ParseError{Reason: fmt.Sprintf("missing %q list", fieldResult)}
	}
	results := result.Array()
	if len(results) == 0 {
		return nil, &ParseError{Reason: fmt.Sprintf("empty %q list", fieldResult)}
	}
	first := results[0]
	if !first.IsObject() {
		return nil, &ParseError{Reason: fmt.Sprintf("first %q entry is not an object", fieldResult)}
	}

	data, err := list(first, fieldData)
	if err != nil {
		return nil, err
	}
	keys, rows, err := rowsFromData(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(keys) == 0 {
		return nil, nil
	}

	colnames, err := list(first, fieldColnames)
	if err != nil {
		return nil, err
	}
	indexnames, err := list(first, fieldIndexnames)
	if err != nil {
		return nil, err
	}
	coltypes, err := list(first, fieldColtypes)
	if err != nil {
		return nil, err
	}

	keys, rows = orderColumns(keys, rows, colnames)

	t := &Table{Rows: rows}
	b.castTemporalColumns(t, colnames, coltypes)

	t.Columns, err = labels(colnames, len(keys), fieldColnames)
	if err != nil {
		return nil, err
	}
	t.Index, err = labels(indexnames, len(rows), fieldIndexnames)
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (b *Builder) castTemporalColumns(t *Table, colnames, coltypes []gjson.Result) {
	for i, ct := range coltypes {
		if ColType(ct.Int()) != ColTypeTemporal {
			continue
		}
		name := strconv.Itoa(i)
		if i < len(colnames) {
			name = colnames[i].String()
		}
		var err error
		if i < len(t.Rows[0]) {
			err = castColumn(t, i)
		} else {
			err = fmt.Errorf("no column at position %d", i)
		}
		if err != nil {
			b.Logger.Errorf("Unable to convert temporal column: %s", &TemporalCastError{Column: name, Err: err})
		}
	}
}

func list(r gjson.Result, field string) ([]gjson.Result, error) {
	v := r.Get(field)
	if !v.Exists() {
		return nil, &ParseError{Reason: fmt.Sprintf("missing %q field", field)}
	}
	if !v.IsArray() {
		return nil, &ParseError{Reason: fmt.Sprintf("field %q is not a list", field)}
	}
	return v.Array(), nil
}

// rowsFromData returns the column keys in first-seen order and one row per
// record. A record without a given key gets a null cell.
func rowsFromData(data []gjson.Result) ([]string, [][]Value, error) {
	var keys []string
	positions := make(map[string]int)
	records := make([]map[int]Value, len(data))

	for i, entry := range data {
		if !entry.IsObject() {
			return nil, nil, &ParseError{Reason: fmt.Sprintf("%q entry %d is not an object", fieldData, i)}
		}
		record := make(map[int]Value)
		entry.ForEach(func(k, v gjson.Result) bool {
			key := k.String()
			pos, found := positions[key]
			if !found {
				pos = len(keys)
				positions[key] = pos
				keys = append(keys, key)
			}
			record[pos] = valueOf(v)
			return true
		})
		records[i] = record
	}

	rows := make([][]Value, len(records))
	for i, record := range records {
		row := make([]Value, len(keys))
		for pos, v := range record {
			row[pos] = v
		}
		rows[i] = row
	}
	return keys, rows, nil
}

func valueOf(r gjson.Result) Value {
	switch r.Type {
	case gjson.String:
		return String(r.Str)
	case gjson.Number:
		return Value{Kind: KindNumber, Num: r.Num, Raw: r.Raw}
	case gjson.True:
		return Bool(true)
	case gjson.False:
		return Bool(false)
	case gjson.JSON:
		return Value{Kind: KindJSON, Raw: r.Raw}
	default:
		return Null()
	}
}

func labels(names []gjson.Result, want int, field string) ([]Label, error) {
	if len(names) != want {
		return nil, &ParseError{Reason: fmt.Sprintf("%q has %d entries, expected %d", field, len(names), want)}
	}
	out := make([]Label, len(names))
	for i, name := range names {
		if !name.IsArray() {
			out[i] = Label{valueOf(name)}
			continue
		}
		parts := name.Array()
		label := make(Label, len(parts))
		for j, part := range parts {
			label[j] = valueOf(part)
		}
		out[i] = label
	}
	return out, nil
}

// orderColumns arranges the columns in colnames order when every colname is
// a scalar naming a distinct data key. Otherwise the data key order stands
// and colnames label the columns by position.
func orderColumns(keys []string, rows [][]Value, colnames []gjson.Result) ([]string, [][]Value) {
	if len(colnames) != len(keys) {
		return keys, rows
	}
	positions := make(map[string]int, len(keys))
	for pos, key := range keys {
		positions[key] = pos
	}
	order := make([]int, len(colnames))
	used := make(map[int]bool, len(colnames))
	for i, name := range colnames {
		if name.IsArray() {
			return keys, rows
		}
		pos, found := positions[name.String()]
		if !found || used[pos] {
			return keys, rows
		}
		used[pos] = true
		order[i] = pos
	}

	ordered := make([]string, len(keys))
	for i, pos := range order {
		ordered[i] = keys[pos]
	}
	for r, row := range rows {
		reordered := make([]Value, len(row))
		for i, pos := range order {
			reordered[i] = row[pos]
		}
		rows[r] = reordered
	}
	return ordered, rows
}

// castColumn replaces column col with timestamps only if every cell converts.
func castColumn(t *Table, col int) error {
	cells := t.Column(col)
	for r, v := range cells {
		ts, err := toTimestamp(v)
		if err != nil {
			return fmt.Errorf("row %d: %w", r, err)
		}
		cells[r] = ts
	}
	for r, v := range cells {
		t.Rows[r][col] = v
	}
	return nil
}

func toTimestamp(v Value) (Value, error) {
	switch v.Kind {
	case KindNull, KindTimestamp:
		return v, nil
	case KindNumber:
		ms, err := epochMillis(v)
		if err != nil {
			return v, err
		}
		return Timestamp(time.UnixMilli(ms)), nil
	case KindString:
		s := strings.TrimSpace(v.Str)
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return Timestamp(t), nil
			}
		}
		return v, fmt.Errorf("unable to parse %q as a timestamp", v.Str)
	default:
		return v, fmt.Errorf("unable to convert %s value to a timestamp", v.Kind)
	}
}

func epochMillis(v Value) (int64, error) {
	if v.Raw != "" {
		if ms, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
			return ms, nil
		}
	}
	f := math.Trunc(v.Num)
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("number %s is out of the timestamp range", v.String())
	}
	return int64(f), nil
}
