// Package table holds the labeled, typed two-dimensional table built from a
// chart data response, and the builder that produces it.
package table

import "slices"

// Label is an axis label made of one component per level. A scalar label
// is a Label with a single component.
type Label []Value

func (l Label) Strings() []string {
	ss := make([]string, len(l))
	for i, v := range l {
		ss[i] = v.String()
	}
	return ss
}

// Table is a row-major table. Columns labels the column axis and Index the
// row axis; len(Index) == len(Rows) and every row has len(Columns) cells.
type Table struct {
	Columns []Label
	Index   []Label
	Rows    [][]Value
}

func (t *Table) NumRows() int {
	return len(t.Rows)
}

func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// Column returns a copy of the cells of column i.
func (t *Table) Column(i int) []Value {
	cells := make([]Value, len(t.Rows))
	for r, row := range t.Rows {
		cells[r] = row[i]
	}
	return cells
}

// ColumnLevels returns the depth of the deepest column label.
func (t *Table) ColumnLevels() int {
	return levels(t.Columns)
}

// IndexLevels returns the depth of the deepest row label.
func (t *Table) IndexLevels() int {
	return levels(t.Index)
}

// Clone returns a deep copy that shares nothing with t.
func (t *Table) Clone() *Table {
	c := &Table{
		Columns: make([]Label, len(t.Columns)),
		Index:   make([]Label, len(t.Index)),
		Rows:    make([][]Value, len(t.Rows)),
	}
	for i, l := range t.Columns {
		c.Columns[i] = slices.Clone(l)
	}
	for i, l := range t.Index {
		c.Index[i] = slices.Clone(l)
	}
	for i, row := range t.Rows {
		c.Rows[i] = slices.Clone(row)
	}
	return c
}

func levels(labels []Label) int {
	n := 0
	for _, l := range labels {
		n = max(n, len(l))
	}
	return n
}
