package etl

import (
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrSchema       = crerr.New("schema error")
	ErrCategory     = crerr.New("invalid data category")
	ErrJoinMismatch = crerr.New("join mismatch")
	ErrParse        = crerr.New("parse error")

	ErrNotNumeric = crerr.New("not a number")
)

// SchemaError reports columns that a step needs but the table does not have.
type SchemaError struct {
	Step    string
	Columns []string
	Cause   error
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("%s: missing columns [%s]", e.Step, strings.Join(e.Columns, ", "))
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }
func (e *SchemaError) Unwrap() error        { return e.Cause }

func newSchemaError(step string, columns []string, cause error) error {
	return crerr.WithStack(&SchemaError{Step: step, Columns: columns, Cause: cause})
}

// CategoryError reports an unrecognised data category name.
type CategoryError struct {
	Category string
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("invalid data category %q", e.Category)
}

func (e *CategoryError) Is(target error) bool { return target == ErrCategory }

// JoinMismatchError reports rows that could not be matched across
// sub-tables on the join key.
type JoinMismatchError struct {
	Keys    []string
	Dropped int
	Reason  string
}

func (e *JoinMismatchError) Error() string {
	return fmt.Sprintf("join on [%s]: %s (dropped=%d)", strings.Join(e.Keys, ", "), e.Reason, e.Dropped)
}

func (e *JoinMismatchError) Is(target error) bool { return target == ErrJoinMismatch }

// ParseError reports a cell that could not be read as the required type.
type ParseError struct {
	Column string
	Row    int
	Input  string
	Cause  error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse column %q row %d: %q", e.Column, e.Row, e.Input)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }
func (e *ParseError) Unwrap() error        { return e.Cause }
