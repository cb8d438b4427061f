package table

import (
	"sort"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
)

// FromRecords builds a text table from a header row and data rows. Cells are
// trimmed, blanks become missing, short rows are padded with missing cells.
// Columns whose non-missing cells all parse as numbers become numeric.
func FromRecords(header []string, records [][]string) (*Table, error) {
	cols := make([]Column, len(header))
	for i, name := range header {
		cols[i] = Column{Name: name, Type: TypeText, Values: make([]Value, len(records))}
	}
	for r, record := range records {
		for c := range cols {
			if c >= len(record) {
				continue
			}
			cell := strings.TrimSpace(record[c])
			if cell == "" {
				continue
			}
			cols[c].Values[r] = StringValue(cell)
		}
	}
	for i := range cols {
		cols[i] = inferNumeric(cols[i])
	}
	return New(cols...)
}

func inferNumeric(col Column) Column {
	parsed := make([]Value, len(col.Values))
	seen := false
	for i, v := range col.Values {
		if v.IsMissing() {
			continue
		}
		f, ok := ParseNumber(v.Text())
		if !ok {
			return col
		}
		parsed[i] = NumberValue(f)
		seen = true
	}
	if !seen {
		return col
	}
	return Column{Name: col.Name, Type: TypeNumeric, Values: parsed}
}

// ParseNumber parses a plain decimal cell, accepting thousands separators
// and a leading sign as printed on sports-reference pages. Go literal forms
// that strconv would take (digit underscores, hex, inf, nan) are rejected so
// labels such as "2022_2023" stay text.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if !isPlainDecimal(s) {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "+")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// isPlainDecimal reports whether s is [sign] digits-with-commas [. digits]
// [e [sign] digits] with at least one mantissa digit.
func isPlainDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for ; i < len(s) && (isDigit(s[i]) || s[i] == ','); i++ {
		if s[i] != ',' {
			digits++
		}
	}
	if i < len(s) && s[i] == '.' {
		for i++; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for ; i < len(s) && isDigit(s[i]); i++ {
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// RenameFunc renames every column through fn.
func (t *Table) RenameFunc(fn func(string) string) (*Table, error) {
	cols := make([]Column, len(t.cols))
	for i, col := range t.cols {
		col.Name = fn(col.Name)
		cols[i] = col
	}
	return New(cols...)
}

// Rename applies mapping to column names; unmapped columns keep their name.
func (t *Table) Rename(mapping map[string]string) (*Table, error) {
	return t.RenameFunc(func(name string) string {
		if renamed, ok := mapping[name]; ok {
			return renamed
		}
		return name
	})
}

// Select projects the table onto names, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	if missing := t.Missing(names...); len(missing) > 0 {
		return nil, crerr.Wrapf(ErrColumnNotFound, "select %s", strings.Join(missing, ", "))
	}
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		cols = append(cols, t.cols[t.index[name]])
	}
	return New(cols...)
}

// Drop removes names. Every name must exist.
func (t *Table) Drop(names ...string) (*Table, error) {
	if missing := t.Missing(names...); len(missing) > 0 {
		return nil, crerr.Wrapf(ErrColumnNotFound, "drop %s", strings.Join(missing, ", "))
	}
	drop := make(map[string]struct{}, len(names))
	for _, name := range names {
		drop[name] = struct{}{}
	}
	cols := make([]Column, 0, len(t.cols))
	for _, col := range t.cols {
		if _, ok := drop[col.Name]; ok {
			continue
		}
		cols = append(cols, col)
	}
	out, err := New(cols...)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		out.rows = t.rows
	}
	return out, nil
}

// WithColumn replaces the column of the same name or appends it.
func (t *Table) WithColumn(col Column) (*Table, error) {
	if len(t.cols) > 0 && len(col.Values) != t.rows {
		return nil, crerr.Wrapf(ErrLengthMismatch, "column %q has %d rows, expected %d", col.Name, len(col.Values), t.rows)
	}
	cols := make([]Column, 0, len(t.cols)+1)
	replaced := false
	for _, existing := range t.cols {
		if existing.Name == col.Name {
			cols = append(cols, col)
			replaced = true
			continue
		}
		cols = append(cols, existing)
	}
	if !replaced {
		cols = append(cols, col)
	}
	return New(cols...)
}

// Fill returns a column named name holding value on every row.
func (t *Table) Fill(name string, typ ColumnType, value Value) Column {
	values := make([]Value, t.NumRows())
	for i := range values {
		values[i] = value
	}
	return Column{Name: name, Type: typ, Values: values}
}

// Convert coerces a column to typ. Text to numeric fails on any non-blank
// cell that is not a number; text to timestamp parses with layouts in order.
func (t *Table) Convert(name string, typ ColumnType, layouts ...string) (*Table, error) {
	col, ok := t.Column(name)
	if !ok {
		return nil, crerr.Wrapf(ErrColumnNotFound, "convert %q", name)
	}
	for i, v := range col.Values {
		if v.IsMissing() {
			continue
		}
		switch typ {
		case TypeNumeric:
			if _, isNum := v.Number(); isNum {
				continue
			}
			f, ok := ParseNumber(v.Text())
			if !ok {
				return nil, crerr.Wrapf(ErrConversion, "column %q row %d: %q is not numeric", name, i, v.Text())
			}
			col.Values[i] = NumberValue(f)
		case TypeTimestamp:
			if _, isTime := v.Timestamp(); isTime {
				continue
			}
			ts, err := ParseTime(v.Text(), time.UTC, layouts...)
			if err != nil {
				return nil, crerr.Wrapf(ErrConversion, "column %q row %d: %v", name, i, err)
			}
			col.Values[i] = TimeValue(ts)
		case TypeText, TypeCategorical:
			if v.Kind() != KindString {
				col.Values[i] = StringValue(v.Text())
			}
		}
	}
	col.Type = typ
	return t.WithColumn(col)
}

// ParseTime parses raw with the first matching layout in loc.
func ParseTime(raw string, loc *time.Location, layouts ...string) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range layouts {
		ts, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = crerr.Newf("no layout given for %q", s)
	}
	return time.Time{}, lastErr
}

// Take returns the rows at the given positions, in that order.
func (t *Table) Take(rows []int) *Table {
	cols := make([]Column, len(t.cols))
	for i, col := range t.cols {
		values := make([]Value, len(rows))
		for j, r := range rows {
			values[j] = col.Values[r]
		}
		cols[i] = Column{Name: col.Name, Type: col.Type, Values: values}
	}
	out, _ := New(cols...)
	return out
}

// Filter keeps rows for which keep returns true.
func (t *Table) Filter(keep func(row int) bool) *Table {
	rows := make([]int, 0, t.rows)
	for r := 0; r < t.rows; r++ {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return t.Take(rows)
}

// SortBy stably sorts rows ascending by keys, missing cells last.
func (t *Table) SortBy(keys ...string) (*Table, error) {
	if missing := t.Missing(keys...); len(missing) > 0 {
		return nil, crerr.Wrapf(ErrColumnNotFound, "sort by %s", strings.Join(missing, ", "))
	}
	order := make([]int, t.rows)
	for i := range order {
		order[i] = i
	}
	keyCols := make([][]Value, len(keys))
	for i, key := range keys {
		keyCols[i] = t.cols[t.index[key]].Values
	}
	sort.SliceStable(order, func(a, b int) bool {
		for _, values := range keyCols {
			if c := compare(values[order[a]], values[order[b]]); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return t.Take(order), nil
}

// Concat stacks tables vertically. The result holds the union of columns in
// first-seen order; cells absent from a table are missing. A column keeps
// its type only when every table holding values in it agrees.
func Concat(tables ...*Table) (*Table, error) {
	var names []string
	types := make(map[string]ColumnType)
	typed := make(map[string]bool)
	total := 0
	for _, t := range tables {
		if t == nil {
			continue
		}
		total += t.rows
		for _, col := range t.cols {
			_, seen := types[col.Name]
			if !seen {
				names = append(names, col.Name)
				types[col.Name] = col.Type
			}
			// An all-missing column carries no type evidence: blank
			// cells infer as text whatever the column holds elsewhere.
			if !hasValues(col) {
				continue
			}
			switch {
			case !typed[col.Name]:
				types[col.Name] = col.Type
				typed[col.Name] = true
			case types[col.Name] != col.Type:
				types[col.Name] = TypeText
			}
		}
	}

	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = Column{Name: name, Type: types[name], Values: make([]Value, 0, total)}
	}
	for _, t := range tables {
		if t == nil {
			continue
		}
		for i, name := range names {
			idx, ok := t.index[name]
			if !ok {
				for r := 0; r < t.rows; r++ {
					cols[i].Values = append(cols[i].Values, Missing())
				}
				continue
			}
			cols[i].Values = append(cols[i].Values, t.cols[idx].Values...)
		}
	}
	return New(cols...)
}

func hasValues(col Column) bool {
	for _, v := range col.Values {
		if !v.IsMissing() {
			return true
		}
	}
	return false
}
