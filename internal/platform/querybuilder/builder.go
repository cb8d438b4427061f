// Package querybuilder renders the small set of PostgreSQL statements the
// stores need, with numbered placeholders.
package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errNoTable   = errors.New("table is required")
	errNoColumns = errors.New("columns are required")
	errNoRows    = errors.New("values are required")
)

// statement accumulates SQL text and its bound arguments.
type statement struct {
	sql  strings.Builder
	args []any
}

// bind records v and returns its placeholder.
func (s *statement) bind(v any) string {
	s.args = append(s.args, v)
	return "$" + strconv.Itoa(len(s.args))
}

func (s *statement) write(parts ...string) {
	for _, p := range parts {
		s.sql.WriteString(p)
	}
}

func (s *statement) result() (string, []any, error) {
	return s.sql.String(), s.args, nil
}

type Condition interface {
	render(s *statement)
}

type eq struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eq{column: column, value: value}
}

func (c eq) render(s *statement) {
	s.write(c.column, " = ", s.bind(c.value))
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = strings.TrimSpace(table)
	return b
}

// Where adds conditions joined with AND.
func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("select: %w", errNoColumns)
	case b.table == "":
		return "", nil, fmt.Errorf("select: %w", errNoTable)
	}

	var s statement
	s.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	for i, c := range b.where {
		if i == 0 {
			s.write(" WHERE ")
		} else {
			s.write(" AND ")
		}
		c.render(&s)
	}
	if len(b.orderBy) > 0 {
		s.write(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		s.write(" LIMIT ", strconv.Itoa(b.limit))
	}
	return s.result()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: strings.TrimSpace(table)}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values appends one row. Its width must match Columns.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix is appended verbatim, typically an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case b.table == "":
		return "", nil, fmt.Errorf("insert: %w", errNoTable)
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert: %w", errNoColumns)
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert: %w", errNoRows)
	}

	var s statement
	s.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for r, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", r, len(row), len(b.columns))
		}
		if r > 0 {
			s.write(", ")
		}
		holders := make([]string, len(row))
		for i, v := range row {
			holders[i] = s.bind(v)
		}
		s.write("(", strings.Join(holders, ", "), ")")
	}
	if b.suffix != "" {
		s.write(" ", b.suffix)
	}
	return s.result()
}
