package export

import (
	"github.com/app-sre/chartcsv/pkg/sanitize"
	"github.com/app-sre/chartcsv/pkg/table"
)

// records flattens t into header records, one per column label level, and
// one body record per row. Header components are escaped by their rendered
// string; row labels and cells only when they hold a string.
func records(t *table.Table, o *Options) ([][]string, [][]string) {
	indexLevels := 0
	if o.Index {
		indexLevels = t.IndexLevels()
	}

	levels := t.ColumnLevels()
	header := make([][]string, levels)
	for l := 0; l < levels; l++ {
		record := make([]string, indexLevels, indexLevels+len(t.Columns))
		for _, label := range t.Columns {
			field := ""
			if l < len(label) {
				field = sanitize.Escape(label[l].String())
			}
			record = append(record, field)
		}
		header[l] = record
	}

	body := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		record := make([]string, 0, indexLevels+len(row))
		if indexLevels > 0 {
			var label table.Label
			if r < len(t.Index) {
				label = t.Index[r]
			}
			for l := 0; l < indexLevels; l++ {
				field := ""
				if l < len(label) {
					field = render(label[l])
				}
				record = append(record, field)
			}
		}
		for _, cell := range row {
			record = append(record, render(cell))
		}
		body[r] = record
	}

	return header, body
}

func render(v table.Value) string {
	if v.IsString() {
		return sanitize.Escape(v.Str)
	}
	return v.String()
}
