package etl

import (
	"math"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/football-etl/internal/domain/table"
)

// Round3 rounds half away from zero to three decimals.
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

// Divide returns num/den. A missing operand or a zero denominator yields
// the missing value.
func Divide(num, den table.Value, round bool) table.Value {
	n, ok := num.Number()
	if !ok {
		return table.Missing()
	}
	d, ok := den.Number()
	if !ok || d == 0 {
		return table.Missing()
	}
	q := n / d
	if round {
		q = Round3(q)
	}
	return table.NumberValue(q)
}

func withRatio(t *table.Table, r Ratio) (*table.Table, error) {
	num, ok := t.Column(r.Numerator)
	if !ok {
		return nil, newSchemaError("derive "+r.Name, []string{r.Numerator}, nil)
	}
	den, ok := t.Column(r.Denominator)
	if !ok {
		return nil, newSchemaError("derive "+r.Name, []string{r.Denominator}, nil)
	}
	values := make([]table.Value, t.NumRows())
	for i := range values {
		values[i] = Divide(num.Values[i], den.Values[i], r.Round)
	}
	out, err := t.WithColumn(table.Column{Name: r.Name, Type: table.TypeNumeric, Values: values})
	if err != nil {
		return nil, newSchemaError("derive "+r.Name, nil, err)
	}
	return out, nil
}

// coerceNumeric converts text cells of the named columns to numbers.
func coerceNumeric(t *table.Table, names ...string) (*table.Table, error) {
	out := t
	for _, name := range names {
		col, ok := out.Column(name)
		if !ok {
			return nil, newSchemaError("coerce numeric", []string{name}, nil)
		}
		if col.Type == table.TypeNumeric {
			continue
		}
		for i, v := range col.Values {
			if v.IsMissing() {
				continue
			}
			if _, isNum := v.Number(); isNum {
				continue
			}
			f, ok := table.ParseNumber(v.Text())
			if !ok {
				return nil, crerr.WithStack(&ParseError{Column: name, Row: i, Input: v.Text(), Cause: ErrNotNumeric})
			}
			col.Values[i] = table.NumberValue(f)
		}
		col.Type = table.TypeNumeric
		var err error
		if out, err = out.WithColumn(col); err != nil {
			return nil, newSchemaError("coerce numeric", nil, err)
		}
	}
	return out, nil
}

func categorical(t *table.Table, names ...string) (*table.Table, error) {
	out := t
	for _, name := range names {
		var err error
		if out, err = out.Convert(name, table.TypeCategorical); err != nil {
			return nil, newSchemaError("categorical", []string{name}, err)
		}
	}
	return out, nil
}
