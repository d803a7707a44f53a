// Package dataset holds the tabular representation shared by the
// import pipeline: a column schema plus typed row values, produced by
// the CSV/JSON/XML readers and consumed by the mapper, the validator
// and the transformer.
package dataset

import (
	"github.com/netgraph/netgraph/pkg/model"
)

// Dataset is an in-memory table. Rows are aligned with Columns;
// missing cells are null values.
type Dataset struct {
	Columns []string
	Rows    [][]model.Value
}

// New creates an empty dataset with the given column schema
func New(columns []string) *Dataset {
	return &Dataset{
		Columns: columns,
		Rows:    make([][]model.Value, 0),
	}
}

// NumRows returns the number of rows
func (d *Dataset) NumRows() int {
	return len(d.Rows)
}

// NumColumns returns the number of columns
func (d *Dataset) NumColumns() int {
	return len(d.Columns)
}

// ColumnIndex returns the position of a column by name
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	for i, c := range d.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// HasColumn reports whether a column exists
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.ColumnIndex(name)
	return ok
}

// Column returns all values of a column in row order. Unknown columns
// yield nil.
func (d *Dataset) Column(name string) []model.Value {
	idx, ok := d.ColumnIndex(name)
	if !ok {
		return nil
	}
	values := make([]model.Value, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[idx]
	}
	return values
}

// Cell returns the value at a row index and column name
func (d *Dataset) Cell(row int, column string) (model.Value, bool) {
	if row < 0 || row >= len(d.Rows) {
		return model.Value{}, false
	}
	idx, ok := d.ColumnIndex(column)
	if !ok {
		return model.Value{}, false
	}
	return d.Rows[row][idx], true
}

// SetColumn replaces all values of a column. The slice length must
// match the row count; mismatches are ignored.
func (d *Dataset) SetColumn(name string, values []model.Value) {
	idx, ok := d.ColumnIndex(name)
	if !ok || len(values) != len(d.Rows) {
		return
	}
	for i := range d.Rows {
		d.Rows[i][idx] = values[i]
	}
}

// AppendRow adds a row, padding or truncating to the column count
func (d *Dataset) AppendRow(row []model.Value) {
	if len(row) < len(d.Columns) {
		padded := make([]model.Value, len(d.Columns))
		copy(padded, row)
		for i := len(row); i < len(d.Columns); i++ {
			padded[i] = model.NullValue()
		}
		row = padded
	} else if len(row) > len(d.Columns) {
		row = row[:len(d.Columns)]
	}
	d.Rows = append(d.Rows, row)
}

// Head returns a copy of the first n rows (all rows if n exceeds the
// row count).
func (d *Dataset) Head(n int) *Dataset {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	head := New(d.Columns)
	for _, row := range d.Rows[:n] {
		copied := make([]model.Value, len(row))
		copy(copied, row)
		head.Rows = append(head.Rows, copied)
	}
	return head
}

// Records converts the rows into column-keyed maps, preserving row
// order in the returned slice.
func (d *Dataset) Records() []map[string]model.Value {
	records := make([]map[string]model.Value, 0, len(d.Rows))
	for _, row := range d.Rows {
		record := make(map[string]model.Value, len(d.Columns))
		for i, col := range d.Columns {
			record[col] = row[i]
		}
		records = append(records, record)
	}
	return records
}

// NonNull returns the non-null values of a column
func (d *Dataset) NonNull(name string) []model.Value {
	values := make([]model.Value, 0)
	for _, v := range d.Column(name) {
		if !v.IsNull() {
			values = append(values, v)
		}
	}
	return values
}

// MissingCount returns the number of null cells in a column
func (d *Dataset) MissingCount(name string) int {
	count := 0
	for _, v := range d.Column(name) {
		if v.IsNull() {
			count++
		}
	}
	return count
}

// UniqueCount returns the number of distinct non-null values in a
// column, compared by display text.
func (d *Dataset) UniqueCount(name string) int {
	seen := make(map[string]bool)
	for _, v := range d.Column(name) {
		if !v.IsNull() {
			seen[v.Text()] = true
		}
	}
	return len(seen)
}
