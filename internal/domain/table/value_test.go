package table

import (
	"math"
	"testing"
	"time"
)

func TestNumberValueRejectsNonFinite(t *testing.T) {
	t.Parallel()

	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if v := NumberValue(f); !v.IsMissing() {
			t.Fatalf("expected %v to be stored as missing, got kind=%d", f, v.Kind())
		}
	}
	if v := TimeValue(time.Time{}); !v.IsMissing() {
		t.Fatalf("expected zero time to be stored as missing")
	}
}

func TestValueCompareOrdersMissingLast(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b Value
		want int
	}{
		{name: "numbers", a: NumberValue(1), b: NumberValue(2), want: -1},
		{name: "strings", a: StringValue("b"), b: StringValue("a"), want: 1},
		{name: "missing after number", a: Missing(), b: NumberValue(0), want: 1},
		{name: "number before missing", a: NumberValue(0), b: Missing(), want: -1},
		{name: "both missing", a: Missing(), b: Missing(), want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := compare(tc.a, tc.b); got != tc.want {
				t.Fatalf("unexpected compare: got=%d want=%d", got, tc.want)
			}
		})
	}
}
