package querybuilder

import (
	"errors"
	"reflect"
	"strings"
)

// dbField is an exported struct field carrying a usable db tag.
type dbField struct {
	column string
	index  int
}

func modelStruct(model any) (reflect.Value, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, errors.New("model cannot be nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, errors.New("model must be struct")
	}
	return v, nil
}

func dbFields(typ reflect.Type) []dbField {
	fields := make([]dbField, 0, typ.NumField())
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		column, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		column = strings.TrimSpace(column)
		if column == "" || column == "-" {
			continue
		}
		fields = append(fields, dbField{column: column, index: i})
	}
	return fields
}

// Columns lists the db column names of model in field order.
func Columns(model any) ([]string, error) {
	v, err := modelStruct(model)
	if err != nil {
		return nil, err
	}
	fields := dbFields(v.Type())
	if len(fields) == 0 {
		return nil, errors.New("model has no db columns")
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.column
	}
	return out, nil
}

// MustColumns is Columns for package-level column lists.
func MustColumns(model any) []string {
	cols, err := Columns(model)
	if err != nil {
		panic(err)
	}
	return cols
}

// InsertModel renders a single-row insert from the db-tagged fields of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	v, err := modelStruct(model)
	if err != nil {
		return "", nil, err
	}
	fields := dbFields(v.Type())
	if len(fields) == 0 {
		return "", nil, errors.New("model has no db columns")
	}

	cols := make([]string, len(fields))
	vals := make([]any, len(fields))
	for i, f := range fields {
		cols[i] = f.column
		vals[i] = v.Field(f.index).Interface()
	}
	return InsertInto(table).Columns(cols...).Values(vals...).Suffix(suffix).ToSQL()
}
