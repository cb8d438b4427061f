package etl

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
)

func TestAggregatorSortsByTeamAndSeason(t *testing.T) {
	t.Parallel()

	seasons := map[string]stats.SeasonRecord{
		"2023_2024": buildSeason(t, "2023_2024", "Chelsea", "Arsenal"),
		"2021_2022": buildSeason(t, "2021_2022", "Brighton", "Chelsea", "Arsenal"),
		"2022_2023": buildSeason(t, "2022_2023", "Arsenal", "Brighton"),
	}

	agg := NewAggregator(DefaultCatalog(), nil)
	record, err := agg.Aggregate(context.Background(), seasons, stats.CategoryDefense, stats.PerspectiveTeam)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	if diff := cmp.Diff([]string{"2021_2022", "2022_2023", "2023_2024"}, record.Seasons); diff != "" {
		t.Fatalf("unexpected seasons (-want +got):\n%s", diff)
	}
	wantSquads := []string{"Arsenal", "Arsenal", "Arsenal", "Brighton", "Brighton", "Chelsea", "Chelsea"}
	wantSeasons := []string{"2021_2022", "2022_2023", "2023_2024", "2021_2022", "2022_2023", "2021_2022", "2023_2024"}
	if diff := cmp.Diff(wantSquads, textColumn(t, record.Table, "Squad")); diff != "" {
		t.Fatalf("unexpected squad order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantSeasons, textColumn(t, record.Table, "season_name")); diff != "" {
		t.Fatalf("unexpected season order (-want +got):\n%s", diff)
	}
	if cols := record.Table.Columns(); cols[0] != "Squad" || cols[1] != "season_name" {
		t.Fatalf("unexpected index columns: %v", cols[:2])
	}
}

func TestAggregatorComparisonView(t *testing.T) {
	t.Parallel()

	seasons := map[string]stats.SeasonRecord{
		"2022_2023": buildSeason(t, "2022_2023", testSquads...),
		"2023_2024": buildSeason(t, "2023_2024", testSquads...),
	}
	agg := NewAggregator(DefaultCatalog(), nil)
	for _, category := range stats.AllCategories() {
		t.Run(string(category), func(t *testing.T) {
			record, err := agg.Aggregate(context.Background(), seasons, category, stats.PerspectiveOpponent)
			if err != nil {
				t.Fatalf("aggregate: %v", err)
			}
			view, err := agg.FilterComparison(record)
			if err != nil {
				t.Fatalf("filter: %v", err)
			}
			spec, _ := DefaultCatalog().Category(category)
			want := append([]string{"Squad", "season_name"}, spec.Comparison...)
			if diff := cmp.Diff(want, view.Columns()); diff != "" {
				t.Fatalf("unexpected comparison columns (-want +got):\n%s", diff)
			}
			if view.NumRows() != 2*len(testSquads) {
				t.Fatalf("unexpected rows: got=%d want=%d", view.NumRows(), 2*len(testSquads))
			}
		})
	}
}

func TestAggregatorUnknownCategory(t *testing.T) {
	t.Parallel()

	_, err := NewAggregator(DefaultCatalog(), nil).Aggregate(context.Background(), nil, stats.Category("xg"), stats.PerspectiveTeam)
	if !errors.Is(err, ErrCategory) {
		t.Fatalf("expected category error, got %v", err)
	}
}

func TestAggregatorDoesNotAliasSeasonTables(t *testing.T) {
	t.Parallel()

	season := buildSeason(t, "2022_2023", testSquads...)
	before := season.TeamData[stats.CategoryPassing].Columns()

	_, err := NewAggregator(DefaultCatalog(), nil).Aggregate(context.Background(),
		map[string]stats.SeasonRecord{"2022_2023": season}, stats.CategoryPassing, stats.PerspectiveTeam)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if diff := cmp.Diff(before, season.TeamData[stats.CategoryPassing].Columns()); diff != "" {
		t.Fatalf("season table changed by aggregation (-before +after):\n%s", diff)
	}
}
