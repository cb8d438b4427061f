package table

import (
	"math"
	"strconv"
	"time"
)

// Kind identifies what a Value holds.
type Kind uint8

const (
	KindMissing Kind = iota
	KindString
	KindNumber
	KindTime
)

// Value is a single cell. The zero value is missing.
type Value struct {
	kind Kind
	str  string
	num  float64
	ts   time.Time
}

func Missing() Value {
	return Value{}
}

func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// NumberValue returns a numeric cell; NaN and infinities are stored as missing.
func NumberValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing()
	}
	return Value{kind: KindNumber, num: f}
}

func TimeValue(t time.Time) Value {
	if t.IsZero() {
		return Missing()
	}
	return Value{kind: KindTime, ts: t}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

func (v Value) Timestamp() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.ts, true
}

// Text renders the cell as plain text. Missing cells render as "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindTime:
		return v.ts.Format(time.DateTime)
	default:
		return ""
	}
}

func (v Value) String() string {
	if v.kind == KindMissing {
		return "NaN"
	}
	return v.Text()
}

// Equal reports whether two cells hold the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindTime:
		return v.ts.Equal(other.ts)
	default:
		return true
	}
}

// compare orders missing cells last, then by kind, then by content.
func compare(a, b Value) int {
	if a.kind != b.kind {
		if a.kind == KindMissing {
			return 1
		}
		if b.kind == KindMissing {
			return -1
		}
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	switch a.kind {
	case KindString:
		switch {
		case a.str < b.str:
			return -1
		case a.str > b.str:
			return 1
		}
	case KindNumber:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
	case KindTime:
		return a.ts.Compare(b.ts)
	}
	return 0
}
