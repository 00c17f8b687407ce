package table

import (
	"strconv"
	"time"
)

const (
	TimestampLayout       = "2006-01-02 15:04:05"
	TimestampLayoutMillis = "2006-01-02 15:04:05.000"
)

type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindTimestamp
	KindJSON
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindTimestamp:
		return "timestamp"
	case KindJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Value is a single cell or label component. Only the field matching Kind
// is meaningful.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
	Time time.Time

	// Raw holds the JSON literal of numbers and nested JSON values.
	Raw string
}

func Null() Value {
	return Value{Kind: KindNull}
}

func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

func Number(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// Timestamp truncates t to millisecond resolution and stores it in UTC.
func Timestamp(t time.Time) Value {
	return Value{Kind: KindTimestamp, Time: t.UTC().Truncate(time.Millisecond)}
}

func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

func (v Value) IsString() bool {
	return v.Kind == KindString
}

// String renders the value the way it appears in an exported field.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		if v.Raw != "" {
			return v.Raw
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindTimestamp:
		if v.Time.Nanosecond() != 0 {
			return v.Time.Format(TimestampLayoutMillis)
		}
		return v.Time.Format(TimestampLayout)
	case KindJSON:
		return v.Raw
	default:
		return ""
	}
}
