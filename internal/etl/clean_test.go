package etl

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
	"github.com/riskibarqy/football-etl/internal/domain/table"
	"github.com/riskibarqy/football-etl/internal/etl/etltest"
)

var testSquads = []string{"Arsenal", "Brighton", "Chelsea"}

func buildSeason(t *testing.T, season string, squads ...string) stats.SeasonRecord {
	t.Helper()
	record, err := NewSeasonBuilder(DefaultCatalog(), nil, nil, nil).Build(context.Background(), etltest.RawSeason(season, squads...))
	if err != nil {
		t.Fatalf("build season: %v", err)
	}
	return record
}

func numbers(t *testing.T, tbl *table.Table, name string) []float64 {
	t.Helper()
	col, ok := tbl.Column(name)
	if !ok {
		t.Fatalf("column %q not found", name)
	}
	out := make([]float64, len(col.Values))
	for i, v := range col.Values {
		f, ok := v.Number()
		if !ok {
			t.Fatalf("column %q row %d is not a number: %v", name, i, v)
		}
		out[i] = f
	}
	return out
}

func TestAttackingCleanerColumns(t *testing.T) {
	t.Parallel()

	record := buildSeason(t, "2023_2024", testSquads...)
	cleaner, err := NewCategoryCleaner(DefaultCatalog(), stats.CategoryAttacking)
	if err != nil {
		t.Fatalf("new cleaner: %v", err)
	}
	got, err := cleaner.Clean(record.TeamData[stats.CategoryAttacking])
	if err != nil {
		t.Fatalf("clean: %v", err)
	}

	want := []string{
		"Squad", "#_Pl", "Age", "Poss", "MP",
		"total_goals", "total_assists", "goals_plus_assists", "non_penalty_goals", "penalties_scored", "penalties_attempted",
		"total_expected_goals", "non_penalty_expected_goals", "expected_assisted_goals",
		"progressive_carries", "progressive_passes",
		"goals_per_90", "assists_per_90", "non_penalty_goals_per_90", "expected_goals_per_90",
		"expected_assisted_goals_per_90", "non_penalty_expected_goals_per_90",
		"total_shots", "total_shots_on_target", "shots_on_target_perc", "shots_per_90", "shots_on_target_per_90",
		"goals_per_shot", "goals_per_shot_on_target", "average_shot_distance", "free_kick_shots",
		"Standard_PK", "Standard_PKatt",
		"non_penalty_expected_goals_per_shot", "goals_minus_expected_goals", "non_penalty_goals_minus_expected_goals",
		"total_shot_creating_actions", "shot_creating_actions_per_90", "SCA_Types_PassLive", "SCA_Types_TO",
		"total_goal_creating_actions", "goal_creating_actions_per_90", "GCA_Types_PassLive", "GCA_Types_TO",
		"goal_to_assist_ratio",
		"total_goals_per_match", "total_assists_per_match", "total_expected_goals_per_match",
		"non_penalty_expected_goals_per_match", "total_shots_per_match", "total_shots_on_target_per_match",
		"total_shot_creating_actions_per_match", "total_goal_creating_actions_per_match",
	}
	if diff := cmp.Diff(want, got.Columns()); diff != "" {
		t.Fatalf("unexpected attacking columns (-want +got):\n%s", diff)
	}
	if typ, _ := got.ColumnType("Squad"); typ != table.TypeCategorical {
		t.Fatalf("unexpected Squad type: got=%s want=%s", typ, table.TypeCategorical)
	}
}

func TestCategoryCleanersApplyDropList(t *testing.T) {
	t.Parallel()

	record := buildSeason(t, "2023_2024", testSquads...)
	catalog := DefaultCatalog()
	for _, category := range []stats.Category{stats.CategoryDefense, stats.CategoryPassing, stats.CategoryGoalkeeping} {
		t.Run(string(category), func(t *testing.T) {
			spec, _ := catalog.Category(category)
			cleaner, err := NewCategoryCleaner(catalog, category)
			if err != nil {
				t.Fatalf("new cleaner: %v", err)
			}
			merged := record.TeamData[category]
			got, err := cleaner.Clean(merged)
			if err != nil {
				t.Fatalf("clean: %v", err)
			}

			dropped := make(map[string]bool, len(spec.Drop))
			for _, name := range spec.Drop {
				dropped[name] = true
			}
			var want []string
			for _, name := range merged.Columns() {
				name = NormalizeName(name)
				if renamed, ok := spec.Rename[name]; ok {
					name = renamed
				}
				if !dropped[name] {
					want = append(want, name)
				}
			}
			for _, r := range spec.Ratios {
				want = append(want, r.Name)
			}
			for _, total := range spec.Totals {
				want = append(want, total+"_per_match")
			}
			if diff := cmp.Diff(want, got.Columns()); diff != "" {
				t.Fatalf("unexpected columns (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPerMatchColumns(t *testing.T) {
	t.Parallel()

	record := buildSeason(t, "2023_2024", testSquads...)
	catalog := DefaultCatalog()
	for _, category := range stats.AllCategories() {
		t.Run(string(category), func(t *testing.T) {
			spec, _ := catalog.Category(category)
			cleaner, _ := NewCategoryCleaner(catalog, category)
			got, err := cleaner.Clean(record.OpponentData[category])
			if err != nil {
				t.Fatalf("clean: %v", err)
			}
			mp := numbers(t, got, "MP")
			for _, total := range spec.Totals {
				totals := numbers(t, got, total)
				perMatch := numbers(t, got, total+"_per_match")
				for i := range totals {
					if want := Round3(totals[i] / mp[i]); perMatch[i] != want {
						t.Fatalf("unexpected %s_per_match row %d: got=%v want=%v", total, i, perMatch[i], want)
					}
				}
			}
		})
	}
}

func TestPlayingTimeCleanerZeroMatches(t *testing.T) {
	t.Parallel()

	raw := etltest.Table(stats.SourcePlayingTime, "Arsenal", "Brighton")
	raw, err := raw.WithColumn(table.Column{
		Name:   "Playing Time_MP",
		Type:   table.TypeNumeric,
		Values: []table.Value{table.NumberValue(0), table.NumberValue(38)},
	})
	if err != nil {
		t.Fatalf("override MP: %v", err)
	}

	cleaner, _ := NewCategoryCleaner(DefaultCatalog(), stats.CategoryPlayingTime)
	got, err := cleaner.Clean(raw)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}

	spec, _ := DefaultCatalog().Category(stats.CategoryPlayingTime)
	if diff := cmp.Diff(spec.Keep, got.Columns()); diff != "" {
		t.Fatalf("unexpected playing time columns (-want +got):\n%s", diff)
	}

	v, _ := got.Value("no_of_subs_used_per_match", 0)
	if !v.IsMissing() {
		t.Fatalf("expected missing per-match value for zero matches, got %v", v)
	}
	v, _ = got.Value("no_of_subs_used_per_match", 1)
	// Subs_Subs is column 11 of the playing time header.
	if want := Round3(etltest.Cell(1, 11) / 38); !v.Equal(table.NumberValue(want)) {
		t.Fatalf("unexpected per-match value: got=%v want=%v", v, want)
	}
}

func TestGoalToAssistRatioZeroAssists(t *testing.T) {
	t.Parallel()

	record := buildSeason(t, "2023_2024", "Arsenal", "Brighton")
	merged := record.TeamData[stats.CategoryAttacking]
	merged, err := merged.WithColumn(table.Column{
		Name:   "Performance_Ast",
		Type:   table.TypeNumeric,
		Values: []table.Value{table.NumberValue(0), table.NumberValue(4)},
	})
	if err != nil {
		t.Fatalf("override assists: %v", err)
	}

	cleaner, _ := NewCategoryCleaner(DefaultCatalog(), stats.CategoryAttacking)
	got, err := cleaner.Clean(merged)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if v, _ := got.Value("goal_to_assist_ratio", 0); !v.IsMissing() {
		t.Fatalf("expected missing ratio for zero assists, got %v", v)
	}
	goals, _ := got.Value("total_goals", 1)
	g, _ := goals.Number()
	if v, _ := got.Value("goal_to_assist_ratio", 1); !v.Equal(table.NumberValue(g / 4)) {
		t.Fatalf("unexpected ratio: got=%v want=%v", v, g/4)
	}
}

func TestCategoryCleanerErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown category", func(t *testing.T) {
		_, err := NewCategoryCleaner(DefaultCatalog(), stats.Category("set_pieces"))
		if !errors.Is(err, ErrCategory) {
			t.Fatalf("expected category error, got %v", err)
		}
	})

	t.Run("missing drop column", func(t *testing.T) {
		raw := etltest.Table(stats.SourceDefensiveAction, "Arsenal")
		cleaner, _ := NewCategoryCleaner(DefaultCatalog(), stats.CategoryDefense)
		_, err := cleaner.Clean(raw)
		if !errors.Is(err, ErrSchema) {
			t.Fatalf("expected schema error, got %v", err)
		}
	})

	t.Run("non numeric total", func(t *testing.T) {
		raw := etltest.Table(stats.SourcePlayingTime, "Arsenal")
		raw, _ = raw.WithColumn(table.Column{Name: "Subs_Subs", Values: []table.Value{table.StringValue("n/a")}})
		cleaner, _ := NewCategoryCleaner(DefaultCatalog(), stats.CategoryPlayingTime)
		_, err := cleaner.Clean(raw)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
		if parseErr.Column != "no_of_subs_used" {
			t.Fatalf("unexpected parse error column: got=%q want=%q", parseErr.Column, "no_of_subs_used")
		}
	})
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	got, err := ParseCategory("passing")
	if err != nil || got != stats.CategoryPassing {
		t.Fatalf("unexpected category: got=%q err=%v", got, err)
	}
	if _, err := ParseCategory("Passing"); !errors.Is(err, ErrCategory) {
		t.Fatalf("expected category error, got %v", err)
	}
}
