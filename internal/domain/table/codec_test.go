package table

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2023, 8, 11, 20, 0, 0, 0, time.UTC)
	tbl, err := New(
		Column{Name: "Squad", Type: TypeCategorical, Values: []Value{StringValue("Burnley"), StringValue("Man City")}},
		Column{Name: "home_score", Type: TypeNumeric, Values: []Value{NumberValue(0), Missing()}},
		Column{Name: "kickoff", Type: TypeTimestamp, Values: []Value{TimeValue(kickoff), Missing()}},
	)
	if err != nil {
		t.Fatalf("build table: %v", err)
	}

	raw, err := Encode(tbl)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if diff := cmp.Diff(tbl.Columns(), got.Columns()); diff != "" {
		t.Fatalf("unexpected columns (-want +got):\n%s", diff)
	}
	for _, name := range tbl.Columns() {
		if want, typ := columnType(t, tbl, name), columnType(t, got, name); want != typ {
			t.Fatalf("unexpected type for %s: got=%s want=%s", name, typ, want)
		}
		for r := 0; r < tbl.NumRows(); r++ {
			want, _ := tbl.Value(name, r)
			v, _ := got.Value(name, r)
			if !want.Equal(v) {
				t.Fatalf("unexpected cell %s[%d]: got=%v want=%v", name, r, v, want)
			}
		}
	}
}

func TestDecodeKeepsRowsOfEmptyTable(t *testing.T) {
	t.Parallel()

	tbl := mustRecords(t, []string{"Squad"}, []string{"Arsenal"}, []string{"Chelsea"})
	empty, err := tbl.Drop("Squad")
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	raw, err := Encode(empty)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.NumRows() != 2 || got.NumCols() != 0 {
		t.Fatalf("unexpected shape: got=%s want=2 rows 0 cols", got)
	}
}

func TestDecodeRejectsInvalidPayload(t *testing.T) {
	t.Parallel()

	if _, err := Decode([]byte(`{"rows":1,`)); err == nil {
		t.Fatalf("expected error for truncated payload")
	}
	if _, err := Decode([]byte(`{"rows":1,"columns":[{"name":"ok","type":"text","values":[true]}]}`)); err == nil {
		t.Fatalf("expected error for unsupported cell")
	}
	if _, err := Decode([]byte(`{"rows":1,"columns":[{"name":"kickoff","type":"timestamp","values":["yesterday"]}]}`)); err == nil {
		t.Fatalf("expected error for invalid timestamp")
	}
}

func TestHash(t *testing.T) {
	t.Parallel()

	a := mustRecords(t, []string{"Squad", "Pts"}, []string{"Arsenal", "84"})
	b := mustRecords(t, []string{"Squad", "Pts"}, []string{"Arsenal", "84"})
	c := mustRecords(t, []string{"Squad", "Pts"}, []string{"Arsenal", "89"})

	ha, err := Hash(a)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	hb, _ := Hash(b)
	hc, _ := Hash(c)
	if ha != hb {
		t.Fatalf("expected equal tables to hash equally: %s != %s", ha, hb)
	}
	if ha == hc {
		t.Fatalf("expected different tables to hash differently")
	}
	if len(ha) != 64 {
		t.Fatalf("unexpected hash length: got=%d want=64", len(ha))
	}
}
