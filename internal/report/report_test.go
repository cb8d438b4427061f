package report

import (
	"bytes"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/google/go-cmp/cmp"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
	"github.com/riskibarqy/football-etl/internal/domain/table"
)

func testTable(t *testing.T) *table.Table {
	t.Helper()

	tbl, err := table.FromRecords(
		[]string{"Squad", "season_name", "Gls"},
		[][]string{
			{"Arsenal", "2023_2024", "88"},
			{"Chelsea", "2023_2024", ""},
			{"Everton", "2023_2024", "40"},
		},
	)
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return tbl
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	RenderTable(&buf, testTable(t), Options{Title: "attacking 100%"})
	out := buf.String()

	for _, want := range []string{"attacking 100%", "SQUAD", "GLS", "Arsenal", "88", "Everton"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if !strings.Contains(out, missingCell) {
		t.Fatalf("expected missing cell marker in output:\n%s", out)
	}
}

func TestRenderTableMaxRows(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	RenderTable(&buf, testTable(t), Options{MaxRows: 1})
	out := buf.String()

	if strings.Contains(out, "Chelsea") {
		t.Fatalf("expected rows beyond MaxRows to be omitted:\n%s", out)
	}
	if !strings.Contains(out, "1 OF 3 ROWS") {
		t.Fatalf("expected truncation footer in output:\n%s", out)
	}
}

func TestRenderTableNil(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	RenderTable(&buf, nil, Options{Title: "Ranking"})
	out := buf.String()
	if !strings.Contains(out, "NO ROWS") {
		t.Fatalf("expected placeholder header for nil table:\n%s", out)
	}
	if !strings.Contains(out, "Ranking") {
		t.Fatalf("expected title for nil table:\n%s", out)
	}
}

func TestSummaryRenderingAndJSON(t *testing.T) {
	t.Parallel()

	records := []stats.ComparisonRecord{
		{
			Category:    stats.CategoryAttacking,
			Perspective: stats.PerspectiveTeam,
			Seasons:     []string{"2022_2023", "2023_2024"},
			Table:       testTable(t),
		},
		{
			Category:    stats.CategoryPassing,
			Perspective: stats.PerspectiveOpponent,
			Seasons:     []string{"2023_2024"},
		},
	}

	summaries := Summarize(records)
	want := []Summary{
		{Category: stats.CategoryAttacking, Perspective: stats.PerspectiveTeam, Seasons: []string{"2022_2023", "2023_2024"}, Rows: 3, Columns: 3},
		{Category: stats.CategoryPassing, Perspective: stats.PerspectiveOpponent, Seasons: []string{"2023_2024"}},
	}
	if diff := cmp.Diff(want, summaries); diff != "" {
		t.Fatalf("unexpected summaries (-want +got):\n%s", diff)
	}

	var text bytes.Buffer
	RenderSummary(&text, summaries)
	if !strings.Contains(text.String(), "2022_2023, 2023_2024") || !strings.Contains(text.String(), "opponent_data") {
		t.Fatalf("unexpected summary output:\n%s", text.String())
	}

	var encoded bytes.Buffer
	if err := WriteSummaryJSON(&encoded, summaries); err != nil {
		t.Fatalf("WriteSummaryJSON error: %v", err)
	}
	var decoded []Summary
	if err := sonic.Unmarshal(encoded.Bytes(), &decoded); err != nil {
		t.Fatalf("decode summary json: %v", err)
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("unexpected decoded summaries (-want +got):\n%s", diff)
	}
}
