package dataprocessing

import (
	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/domain"
)

// Dataset is an in-memory table loaded from a workbook.
// Cell values are one of nil, float64, int64, bool, string or time.Time.
// A Dataset is never mutated after construction and is safe for concurrent reads.
type Dataset struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// NewDataset builds a dataset, padding short rows with nil and
// truncating rows longer than the header.
func NewDataset(columns []string, rows [][]any) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)

	index := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, exists := index[c]; !exists {
			index[c] = i
		}
	}

	normalized := make([][]any, len(rows))
	for i, row := range rows {
		out := make([]any, len(cols))
		copy(out, row)
		normalized[i] = out
	}

	return &Dataset{columns: cols, index: index, rows: normalized}
}

// Columns returns the column names in sheet order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// HasColumn reports whether a column with the given name exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Value returns the cell at row i in the named column, or nil when the column is absent.
func (d *Dataset) Value(i int, column string) any {
	j, ok := d.index[column]
	if !ok || i < 0 || i >= len(d.rows) {
		return nil
	}
	return d.rows[i][j]
}

// Row returns row i as an ordered record.
func (d *Dataset) Row(i int) domain.Row {
	return domain.NewRow(d.columns, d.rows[i])
}

// Rows returns the ordered records for the given row indexes.
func (d *Dataset) Rows(indexes []int) []domain.Row {
	out := make([]domain.Row, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, d.Row(i))
	}
	return out
}

// AllIndexes returns 0..Len()-1.
func (d *Dataset) AllIndexes() []int {
	out := make([]int, len(d.rows))
	for i := range out {
		out[i] = i
	}
	return out
}

// Where returns the indexes of rows whose value in column satisfies keep, in row order.
func (d *Dataset) Where(column string, keep func(v any) bool) []int {
	j, ok := d.index[column]
	if !ok {
		return nil
	}
	var out []int
	for i, row := range d.rows {
		if keep(row[j]) {
			out = append(out, i)
		}
	}
	return out
}
