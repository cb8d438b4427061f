package etl

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
	"github.com/riskibarqy/football-etl/internal/etl/etltest"
)

func TestSeasonBuilderBuild(t *testing.T) {
	t.Parallel()

	record := buildSeason(t, "2022_2023", testSquads...)
	if record.Season != "2022_2023" {
		t.Fatalf("unexpected season: got=%q want=%q", record.Season, "2022_2023")
	}
	for _, p := range stats.Perspectives() {
		for _, category := range stats.AllCategories() {
			tbl := record.Data(p)[category]
			if tbl == nil {
				t.Fatalf("missing %s %s table", p, category)
			}
			if tbl.NumRows() != len(testSquads) {
				t.Fatalf("unexpected %s %s rows: got=%d want=%d", p, category, tbl.NumRows(), len(testSquads))
			}
			if dropped := record.DroppedRows[p][category]; dropped != 0 {
				t.Fatalf("unexpected %s %s dropped rows: got=%d want=0", p, category, dropped)
			}
		}
	}

	want := DefaultCatalog().LeagueTable().Output()
	if diff := cmp.Diff(want, record.LeagueTable.Columns()); diff != "" {
		t.Fatalf("unexpected league table columns (-want +got):\n%s", diff)
	}
	if record.Fixtures == nil || record.Fixtures.NumRows() != len(testSquads) {
		t.Fatalf("unexpected fixtures: %v", record.Fixtures)
	}
}

func TestSeasonBuilderCountsDroppedRows(t *testing.T) {
	t.Parallel()

	raw := etltest.RawSeason("2022_2023", testSquads...)
	raw.Tables[stats.SourceShooting] = etltest.Table(stats.SourceShooting, "Arsenal", "Brighton")

	record, err := NewSeasonBuilder(DefaultCatalog(), nil, nil, nil).Build(context.Background(), raw)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// Chelsea is unmatched once against shooting and once against shot creation.
	if got := record.DroppedRows[stats.PerspectiveTeam][stats.CategoryAttacking]; got != 2 {
		t.Fatalf("unexpected dropped rows: got=%d want=2", got)
	}
	if got := record.TeamData[stats.CategoryAttacking].NumRows(); got != 2 {
		t.Fatalf("unexpected attacking rows: got=%d want=2", got)
	}
	if got := record.DroppedRows[stats.PerspectiveOpponent][stats.CategoryAttacking]; got != 0 {
		t.Fatalf("unexpected opponent dropped rows: got=%d want=0", got)
	}

	strict := NewSeasonBuilder(DefaultCatalog(), NewMerger(true, nil), nil, nil)
	if _, err := strict.Build(context.Background(), raw); !errors.Is(err, ErrJoinMismatch) {
		t.Fatalf("expected join mismatch under strict joins, got %v", err)
	}
}

func TestSeasonBuilderMissingSource(t *testing.T) {
	t.Parallel()

	raw := etltest.RawSeason("2022_2023", testSquads...)
	delete(raw.Tables, stats.SourcePossession.For(stats.PerspectiveOpponent))

	_, err := NewSeasonBuilder(DefaultCatalog(), nil, nil, nil).Build(context.Background(), raw)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if diff := cmp.Diff([]string{"possession_opp"}, schemaErr.Columns); diff != "" {
		t.Fatalf("unexpected missing sources (-want +got):\n%s", diff)
	}
}
