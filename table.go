package rdata

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrColumnLength    = errors.New("column length mismatch")
	ErrSchemaMismatch  = errors.New("schema mismatch")
)

type errDuplicateColumn struct {
	name string
}

func (e errDuplicateColumn) Error() string {
	return fmt.Sprintf("column %q appears more than once", e.name)
}

func (e errDuplicateColumn) Unwrap() error {
	return ErrDuplicateColumn
}

// Table is an ordered set of equal-length columns.  A Table is immutable
// after construction; operations that change shape return a new Table that
// may share column storage with its input.
type Table struct {
	cols  []Column
	nrows int
}

// NewTable builds a Table from cols, enforcing that all columns share one
// length and that column names are unique.  A table with no columns is
// valid and has zero rows.
func NewTable(cols ...Column) (*Table, error) {
	var nrows int
	names := make(map[string]struct{}, len(cols))
	for i, col := range cols {
		if _, ok := names[col.Name()]; ok {
			return nil, errDuplicateColumn{col.Name()}
		}
		names[col.Name()] = struct{}{}
		if i == 0 {
			nrows = col.Len()
		} else if col.Len() != nrows {
			return nil, fmt.Errorf("column %q has %d rows, want %d: %w",
				col.Name(), col.Len(), nrows, ErrColumnLength)
		}
	}
	return &Table{cols: cols, nrows: nrows}, nil
}

func (t *Table) NumRows() int    { return t.nrows }
func (t *Table) NumColumns() int { return len(t.cols) }

// Columns returns the table's columns in order.  The slice must not be
// modified.
func (t *Table) Columns() []Column { return t.cols }

// Lookup returns the named column.
func (t *Table) Lookup(name string) (Column, bool) {
	for _, col := range t.cols {
		if col.Name() == name {
			return col, true
		}
	}
	return nil, false
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.Name()
	}
	return names
}

// Take returns a new table holding the rows selected by indices, in order.
// Indices may repeat and need not be sorted.
func (t *Table) Take(indices []int) *Table {
	cols := make([]Column, len(t.cols))
	for i, col := range t.cols {
		cols[i] = col.take(indices)
	}
	return &Table{cols: cols, nrows: len(indices)}
}

// Row returns the values of one row in column order.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.cols))
	for j, col := range t.cols {
		row[j] = col.Value(i)
	}
	return row
}

// Concat appends schema-identical tables into one.  Schemas must match in
// column names, order, and types.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return NewTable()
	}
	if len(tables) == 1 {
		return tables[0], nil
	}
	first := tables[0]
	for _, t := range tables[1:] {
		if t.NumColumns() != first.NumColumns() {
			return nil, fmt.Errorf("concat: %w", ErrSchemaMismatch)
		}
		for i, col := range t.cols {
			if col.Name() != first.cols[i].Name() || col.Type() != first.cols[i].Type() {
				return nil, fmt.Errorf("concat: column %q: %w", col.Name(), ErrSchemaMismatch)
			}
		}
	}
	var nrows int
	for _, t := range tables {
		nrows += t.nrows
	}
	cols := make([]Column, first.NumColumns())
	for i := range cols {
		b := NewColumnBuilder(first.cols[i].Name(), first.cols[i].Type())
		for _, t := range tables {
			col := t.cols[i]
			for r := 0; r < col.Len(); r++ {
				if err := b.Append(col.Value(r)); err != nil {
					return nil, err
				}
			}
		}
		cols[i] = b.Build()
	}
	out, err := NewTable(cols...)
	if err != nil {
		return nil, err
	}
	if out.nrows != nrows {
		return nil, fmt.Errorf("concat: %w", ErrColumnLength)
	}
	return out, nil
}
