package table

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrColumnNotFound  = crerr.New("column not found")
	ErrDuplicateColumn = crerr.New("duplicate column")
	ErrLengthMismatch  = crerr.New("column length mismatch")
	ErrConversion      = crerr.New("value conversion failed")
)

// ColumnType is the logical type of a column.
type ColumnType string

const (
	TypeText        ColumnType = "text"
	TypeCategorical ColumnType = "categorical"
	TypeNumeric     ColumnType = "numeric"
	TypeTimestamp   ColumnType = "timestamp"
)

// Column is a named, typed vector of cells.
type Column struct {
	Name   string
	Type   ColumnType
	Values []Value
}

func (c Column) clone() Column {
	values := make([]Value, len(c.Values))
	copy(values, c.Values)
	return Column{Name: c.Name, Type: c.Type, Values: values}
}

// Table is an ordered collection of uniquely named columns of equal length.
// Operations never mutate the receiver; they return a new Table.
type Table struct {
	cols  []Column
	index map[string]int
	rows  int
}

// New builds a table from columns, copying their values.
func New(cols ...Column) (*Table, error) {
	t := &Table{
		cols:  make([]Column, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for i, col := range cols {
		if _, exists := t.index[col.Name]; exists {
			return nil, crerr.Wrapf(ErrDuplicateColumn, "column %q", col.Name)
		}
		if i == 0 {
			t.rows = len(col.Values)
		} else if len(col.Values) != t.rows {
			return nil, crerr.Wrapf(ErrLengthMismatch, "column %q has %d rows, expected %d", col.Name, len(col.Values), t.rows)
		}
		if col.Type == "" {
			col.Type = TypeText
		}
		t.index[col.Name] = len(t.cols)
		t.cols = append(t.cols, col.clone())
	}
	return t, nil
}

// Empty returns a table with no columns and no rows.
func Empty() *Table {
	return &Table{index: map[string]int{}}
}

func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return t.rows
}

func (t *Table) NumCols() int {
	if t == nil {
		return 0
	}
	return len(t.cols)
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.cols))
	for _, col := range t.cols {
		out = append(out, col.Name)
	}
	return out
}

func (t *Table) Has(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) (Column, bool) {
	if t == nil {
		return Column{}, false
	}
	idx, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[idx].clone(), true
}

func (t *Table) ColumnType(name string) (ColumnType, bool) {
	if t == nil {
		return "", false
	}
	idx, ok := t.index[name]
	if !ok {
		return "", false
	}
	return t.cols[idx].Type, true
}

// Value returns the cell at (name, row).
func (t *Table) Value(name string, row int) (Value, bool) {
	if t == nil || row < 0 || row >= t.rows {
		return Missing(), false
	}
	idx, ok := t.index[name]
	if !ok {
		return Missing(), false
	}
	return t.cols[idx].Values[row], true
}

// Missing lists the given names that are not columns of t, in input order.
func (t *Table) Missing(names ...string) []string {
	var out []string
	for _, name := range names {
		if !t.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

func (t *Table) Clone() *Table {
	if t == nil {
		return Empty()
	}
	out, _ := New(t.cols...)
	if len(t.cols) == 0 {
		out.rows = t.rows
	}
	return out
}

func (t *Table) String() string {
	return fmt.Sprintf("Table(rows=%d, cols=%d)", t.NumRows(), t.NumCols())
}
