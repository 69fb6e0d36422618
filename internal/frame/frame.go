// Package frame provides Frame, the immutable in-memory table that datasets
// carry between storage and pipeline steps.
package frame

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidColumn is returned for a zero-value or unnamed column
	ErrInvalidColumn = errors.New("invalid column")
	// ErrDuplicateColumn is returned when two columns share a name
	ErrDuplicateColumn = errors.New("duplicate column")
	// ErrLengthMismatch is returned when columns differ in length
	ErrLengthMismatch = errors.New("column length mismatch")
)

// Frame is an ordered set of equally long, uniquely named columns.
// A Frame is never modified after New returns.
type Frame struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New creates a frame from columns, in the given order
func New(columns ...Column) (*Frame, error) {
	f := &Frame{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}

	for i, c := range columns {
		if c.kind == KindInvalid || c.name == "" {
			return nil, fmt.Errorf("%w at position %d", ErrInvalidColumn, i)
		}
		if _, dup := f.index[c.name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.name)
		}
		if i == 0 {
			f.rows = c.Len()
		} else if c.Len() != f.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d",
				ErrLengthMismatch, c.name, c.Len(), f.rows)
		}
		f.index[c.name] = i
		f.columns = append(f.columns, c)
	}

	return f, nil
}

// MustNew is like New but panics on error. Intended for fixtures.
func MustNew(columns ...Column) *Frame {
	f, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return f
}

// NumRows returns the number of rows
func (f *Frame) NumRows() int { return f.rows }

// NumCols returns the number of columns
func (f *Frame) NumCols() int { return len(f.columns) }

// Shape returns (rows, columns)
func (f *Frame) Shape() (int, int) { return f.rows, len(f.columns) }

// ColumnNames returns the column names in order
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.name
	}
	return names
}

// Column looks up a column by name
func (f *Frame) Column(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return Column{}, false
	}
	return f.columns[i], true
}

// ColumnAt returns the i-th column
func (f *Frame) ColumnAt(i int) Column { return f.columns[i] }

// Columns returns the columns in order
func (f *Frame) Columns() []Column { return slices.Clone(f.columns) }

// Value returns the value at (row, col)
func (f *Frame) Value(row, col int) any { return f.columns[col].Value(row) }

// Equal reports whether both frames have the same columns in the same order
// with the same values in the same row order
func (f *Frame) Equal(o *Frame) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.rows == o.rows && slices.EqualFunc(f.columns, o.columns, Column.Equal)
}

// Reverse returns a new frame with the rows in reverse order
func (f *Frame) Reverse() *Frame {
	columns := make([]Column, len(f.columns))
	for i, c := range f.columns {
		columns[i] = c.reversed()
	}
	return &Frame{columns: columns, index: f.index, rows: f.rows}
}

// String returns a short description such as "Frame[3x2]"
func (f *Frame) String() string {
	return fmt.Sprintf("Frame[%dx%d]", f.rows, len(f.columns))
}
