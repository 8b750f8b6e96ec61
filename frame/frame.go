package frame

import (
	"fmt"
	"reflect"

	"github.com/go-parti/parti/errors"
)

// A Frame is a small, ordered-column tabular value. Column order is
// significant and preserved: it is the order in which columns were first
// seen, whether via CreateFrame or a permissive Combine. Cells are untyped;
// parsers in this library produce string, float64, bool and nil cells.
type Frame struct {
	cols  []string
	index map[string]int
	rows  [][]interface{}
}

// CreateFrame is a factory for Frames with the given columns, in order
func CreateFrame(cols ...string) (*Frame, error) {
	f := &Frame{
		cols:  make([]string, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for _, name := range cols {
		if _, ok := f.index[name]; ok {
			return nil, errors.ConfigurationError{Reason: fmt.Sprintf("frame already contains column with name %s", name)}
		}
		f.index[name] = len(f.cols)
		f.cols = append(f.cols, name)
	}
	return f, nil
}

// NumColumns returns the number of columns in this Frame
func (f *Frame) NumColumns() int {
	return len(f.cols)
}

// NumRows returns the number of rows in this Frame
func (f *Frame) NumRows() int {
	return len(f.rows)
}

// ColumnNames returns the column names of this Frame, in column order
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.cols))
	copy(names, f.cols)
	return names
}

// HasColumn returns true iff this Frame contains a column with the given name
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// AppendRow adds a row of cells to the end of this Frame. The number of cells
// must match the number of columns.
func (f *Frame) AppendRow(cells ...interface{}) error {
	if len(cells) != len(f.cols) {
		return errors.IncompatibleRowError{Expected: len(f.cols), Actual: len(cells)}
	}
	row := make([]interface{}, len(cells))
	copy(row, cells)
	f.rows = append(f.rows, row)
	return nil
}

// Cell returns the value at the given row in the named column
func (f *Frame) Cell(rowNum int, col string) (interface{}, error) {
	idx, ok := f.index[col]
	if !ok {
		return nil, fmt.Errorf("frame does not contain column with name %s", col)
	}
	if rowNum < 0 || rowNum >= len(f.rows) {
		return nil, fmt.Errorf("row %d is out of range for a frame of %d rows", rowNum, len(f.rows))
	}
	return f.rows[rowNum][idx], nil
}

// Row returns a copy of the cells of the given row, in column order
func (f *Frame) Row(rowNum int) ([]interface{}, error) {
	if rowNum < 0 || rowNum >= len(f.rows) {
		return nil, fmt.Errorf("row %d is out of range for a frame of %d rows", rowNum, len(f.rows))
	}
	row := make([]interface{}, len(f.rows[rowNum]))
	copy(row, f.rows[rowNum])
	return row, nil
}

// ForEachRow iterates over the rows of this Frame in order, passing each
// row's cells in column order
func (f *Frame) ForEachRow(fn func(rowNum int, cells []interface{}) error) error {
	for i, row := range f.rows {
		if err := fn(i, row); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of this Frame
func (f *Frame) Clone() *Frame {
	clone, _ := CreateFrame(f.cols...)
	for _, row := range f.rows {
		cells := make([]interface{}, len(row))
		copy(cells, row)
		clone.rows = append(clone.rows, cells)
	}
	return clone
}

// Equals returns nil iff this and another Frame have identical columns,
// column order, and cell values
func (f *Frame) Equals(other *Frame) error {
	if other == nil {
		return fmt.Errorf("other frame is nil")
	}
	if len(f.cols) != len(other.cols) {
		return fmt.Errorf("frames have unequal column counts")
	}
	for i, name := range f.cols {
		if other.cols[i] != name {
			return fmt.Errorf("column %d differs: %s vs %s", i, name, other.cols[i])
		}
	}
	if len(f.rows) != len(other.rows) {
		return fmt.Errorf("frames have unequal row counts")
	}
	for i, row := range f.rows {
		for j, cell := range row {
			if !reflect.DeepEqual(cell, other.rows[i][j]) {
				return fmt.Errorf("cell (%d, %s) differs: %#v vs %#v", i, f.cols[j], cell, other.rows[i][j])
			}
		}
	}
	return nil
}
