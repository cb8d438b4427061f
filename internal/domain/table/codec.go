package table

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

type columnPayload struct {
	Name   string     `json:"name"`
	Type   ColumnType `json:"type"`
	Values []any      `json:"values"`
}

type tablePayload struct {
	Rows    int             `json:"rows"`
	Columns []columnPayload `json:"columns"`
}

// Encode serialises t column-wise. Missing cells encode as null, timestamps
// as RFC 3339 strings.
func Encode(t *Table) ([]byte, error) {
	var cols []Column
	if t != nil {
		cols = t.cols
	}
	payload := tablePayload{Rows: t.NumRows(), Columns: make([]columnPayload, 0, len(cols))}
	for _, col := range cols {
		values := make([]any, len(col.Values))
		for i, v := range col.Values {
			switch v.Kind() {
			case KindString:
				values[i] = v.str
			case KindNumber:
				values[i] = v.num
			case KindTime:
				values[i] = v.ts.Format(time.RFC3339)
			default:
				values[i] = nil
			}
		}
		payload.Columns = append(payload.Columns, columnPayload{Name: col.Name, Type: col.Type, Values: values})
	}
	encoded, err := sonic.Marshal(payload)
	if err != nil {
		return nil, crerr.Wrap(err, "encode table")
	}
	return encoded, nil
}

// Decode is the inverse of Encode.
func Decode(raw []byte) (*Table, error) {
	var payload tablePayload
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode table")
	}
	cols := make([]Column, 0, len(payload.Columns))
	for _, c := range payload.Columns {
		values := make([]Value, len(c.Values))
		for i, raw := range c.Values {
			switch v := raw.(type) {
			case nil:
				values[i] = Missing()
			case float64:
				values[i] = NumberValue(v)
			case string:
				if c.Type == TypeTimestamp {
					ts, err := time.Parse(time.RFC3339, v)
					if err != nil {
						return nil, crerr.Wrapf(err, "decode column %q row %d", c.Name, i)
					}
					values[i] = TimeValue(ts)
					continue
				}
				values[i] = StringValue(v)
			default:
				return nil, crerr.Newf("decode column %q row %d: unsupported cell %T", c.Name, i, raw)
			}
		}
		cols = append(cols, Column{Name: c.Name, Type: c.Type, Values: values})
	}
	t, err := New(cols...)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		t.rows = payload.Rows
	}
	return t, nil
}

// Hash returns a hex SHA-256 of the encoded table.
func Hash(t *Table) (string, error) {
	encoded, err := Encode(t)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}
