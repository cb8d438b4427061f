package etl

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/riskibarqy/football-etl/internal/domain/table"
)

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Playing Time_MP":         "Playing_Time_MP",
		"Standard_Sh/90":          "Standard_Sh_per_90",
		"Performance_G+A-PK":      "Performance_G_plus_A_minus_PK",
		"Challenges_Tkl%":         "Challenges_Tkl_perc",
		"Expected_PSxG+/-":        "Expected_PSxG_plus__per__minus_",
		"Team Success (xG)_xG+/-": "Team_Success_(xG)_xG_plus__per__minus_",
		"Squad":                   "Squad",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Fatalf("unexpected name for %q: got=%q want=%q", in, got, want)
		}
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Per 90 Minutes_G+A-PK", "Take-Ons_Succ%", "1/3", "Sweeper_#OPA/90", "a  b"} {
		once := NormalizeName(name)
		if twice := NormalizeName(once); twice != once {
			t.Fatalf("normalize not idempotent for %q: once=%q twice=%q", name, once, twice)
		}
	}
}

func TestStripPlaceholder(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Unnamed: 0_level_0_Squad":   "Squad",
		"Unnamed: 1_level_0_# Pl":    "# Pl",
		"Unnamed: 22_level_0_1/3":    "1/3",
		"Unnamed: 3_level_1_Tkl_Int": "Tkl_Int",
		"Playing Time_MP":            "Playing Time_MP",
		"Unnamed column without lvl": "Unnamed column without lvl",
		"Unnamed: 4_level_0":         "Unnamed: 4_level_0",
	}
	for in, want := range cases {
		if got := StripPlaceholder(in); got != want {
			t.Fatalf("unexpected strip for %q: got=%q want=%q", in, got, want)
		}
	}
}

func TestNormalizerApply(t *testing.T) {
	t.Parallel()

	raw, err := table.FromRecords(
		[]string{"Unnamed: 0_level_0_Squad", "Playing Time_MP", "Performance_Gls", "Standard_SoT%"},
		[][]string{{"Arsenal", "38", "88", "35.1"}},
	)
	if err != nil {
		t.Fatalf("build table: %v", err)
	}

	n := NewNormalizer("test", map[string]string{"Playing_Time_MP": "MP", "Performance_Gls": "total_goals"}, []string{"Squad", "MP"})
	got, err := n.Apply(raw)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := []string{"Squad", "MP", "total_goals", "Standard_SoT_perc"}
	if diff := cmp.Diff(want, got.Columns()); diff != "" {
		t.Fatalf("unexpected columns (-want +got):\n%s", diff)
	}

	again, err := n.Apply(got)
	if err != nil {
		t.Fatalf("apply twice: %v", err)
	}
	if diff := cmp.Diff(got.Columns(), again.Columns()); diff != "" {
		t.Fatalf("normalizer not idempotent (-once +twice):\n%s", diff)
	}
}

func TestNormalizerMissingRequiredColumn(t *testing.T) {
	t.Parallel()

	raw, _ := table.FromRecords([]string{"Squad"}, [][]string{{"Arsenal"}})
	_, err := NewNormalizer("test", nil, []string{"Squad", "MP"}).Apply(raw)
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	if diff := cmp.Diff([]string{"MP"}, schemaErr.Columns); diff != "" {
		t.Fatalf("unexpected missing columns (-want +got):\n%s", diff)
	}
}
