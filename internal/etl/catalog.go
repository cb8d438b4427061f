package etl

import (
	"maps"
	"slices"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
)

const (
	ColumnSquad       = "Squad"
	ColumnMatches     = "MP"
	ColumnSeason      = "season_name"
	perMatchSuffix    = "_per_match"
	rawPlayerCount    = "# Pl"
	rawMinutesBucket  = "90s"
	rawLeagueRank     = "Rk"
	fixturesScoreDash = "–"
)

// Ratio derives Name = Numerator / Denominator, optionally rounded to 3dp.
type Ratio struct {
	Name        string
	Numerator   string
	Denominator string
	Round       bool
}

// MergeStep joins the next source table onto the running merge result.
type MergeStep struct {
	Source stats.SourceTable
	Keys   []string
}

// CategorySpec is the injected column configuration for one category.
type CategorySpec struct {
	Category   stats.Category
	First      stats.SourceTable
	Merge      []MergeStep
	Rename     map[string]string
	Ratios     []Ratio
	Totals     []string
	Drop       []string
	Keep       []string
	Comparison []string
}

func (s CategorySpec) clone() CategorySpec {
	out := s
	out.Rename = maps.Clone(s.Rename)
	out.Ratios = slices.Clone(s.Ratios)
	out.Totals = slices.Clone(s.Totals)
	out.Drop = slices.Clone(s.Drop)
	out.Keep = slices.Clone(s.Keep)
	out.Comparison = slices.Clone(s.Comparison)
	out.Merge = make([]MergeStep, len(s.Merge))
	for i, step := range s.Merge {
		out.Merge[i] = MergeStep{Source: step.Source, Keys: slices.Clone(step.Keys)}
	}
	return out
}

// Sources lists the source tables merged for this category, in merge order.
func (s CategorySpec) Sources() []stats.SourceTable {
	out := []stats.SourceTable{s.First}
	for _, step := range s.Merge {
		out = append(out, step.Source)
	}
	return out
}

// required lists the post-rename columns the cleaner reads or drops.
func (s CategorySpec) required() []string {
	out := []string{ColumnSquad, ColumnMatches}
	out = append(out, s.Totals...)
	for _, r := range s.Ratios {
		out = append(out, r.Numerator, r.Denominator)
	}
	out = append(out, s.Drop...)
	derived := make(map[string]struct{})
	for _, r := range s.Ratios {
		derived[r.Name] = struct{}{}
	}
	for _, col := range s.Totals {
		derived[col+perMatchSuffix] = struct{}{}
	}
	for _, col := range s.Keep {
		if _, ok := derived[col]; !ok {
			out = append(out, col)
		}
	}
	return dedupe(out)
}

// LeagueTableSpec configures the league table merge and cleaner.
type LeagueTableSpec struct {
	JoinKeys []string
	Columns  []string
	Rename   map[string]string
	Ratios   []Ratio
}

// Output is the final column order of the cleaned league table.
func (s LeagueTableSpec) Output() []string {
	out := make([]string, 0, len(s.Columns)+len(s.Ratios))
	for _, col := range s.Columns {
		if renamed, ok := s.Rename[col]; ok {
			col = renamed
		}
		out = append(out, col)
	}
	for _, r := range s.Ratios {
		out = append(out, r.Name)
	}
	return out
}

// FixturesSpec configures the schedule cleaner.
type FixturesSpec struct {
	ScoreColumn    string
	ScoreSeparator string
	DateColumn     string
	TimeColumn     string
	DateLayouts    []string
	KickoffLayouts []string
	Numeric        []string
	Categorical    []string
	Rename         map[string]string
	Columns        []string
}

// FootballDataSpec configures the results-provider cleaner.
type FootballDataSpec struct {
	Rename         map[string]string
	KickoffLayouts []string
	Categorical    []string
	// Numeric columns are coerced to numbers; any other cell is a ParseError.
	Numeric []string
	Columns []string
}

// Catalog is the immutable column configuration injected into the
// normalizer, merger and cleaners. Accessors return copies.
type Catalog struct {
	categories   map[stats.Category]CategorySpec
	leagueTable  LeagueTableSpec
	fixtures     FixturesSpec
	footballData FootballDataSpec
}

// NewCatalog builds a catalog from explicit specs.
func NewCatalog(categories []CategorySpec, league LeagueTableSpec, fixtures FixturesSpec, footballData FootballDataSpec) Catalog {
	byCategory := make(map[stats.Category]CategorySpec, len(categories))
	for _, spec := range categories {
		byCategory[spec.Category] = spec.clone()
	}
	return Catalog{
		categories:   byCategory,
		leagueTable:  cloneLeagueSpec(league),
		fixtures:     cloneFixturesSpec(fixtures),
		footballData: cloneFootballDataSpec(footballData),
	}
}

// Category returns the spec for a category or a CategoryError.
func (c Catalog) Category(category stats.Category) (CategorySpec, error) {
	spec, ok := c.categories[category]
	if !ok {
		return CategorySpec{}, &CategoryError{Category: string(category)}
	}
	return spec.clone(), nil
}

func (c Catalog) LeagueTable() LeagueTableSpec {
	return cloneLeagueSpec(c.leagueTable)
}

func (c Catalog) Fixtures() FixturesSpec {
	return cloneFixturesSpec(c.fixtures)
}

func (c Catalog) FootballData() FootballDataSpec {
	return cloneFootballDataSpec(c.footballData)
}

// ParseCategory validates a category name.
func ParseCategory(name string) (stats.Category, error) {
	category := stats.Category(name)
	if !category.Valid() {
		return "", &CategoryError{Category: name}
	}
	return category, nil
}

func cloneLeagueSpec(s LeagueTableSpec) LeagueTableSpec {
	return LeagueTableSpec{
		JoinKeys: slices.Clone(s.JoinKeys),
		Columns:  slices.Clone(s.Columns),
		Rename:   maps.Clone(s.Rename),
		Ratios:   slices.Clone(s.Ratios),
	}
}

func cloneFixturesSpec(s FixturesSpec) FixturesSpec {
	out := s
	out.DateLayouts = slices.Clone(s.DateLayouts)
	out.KickoffLayouts = slices.Clone(s.KickoffLayouts)
	out.Numeric = slices.Clone(s.Numeric)
	out.Categorical = slices.Clone(s.Categorical)
	out.Rename = maps.Clone(s.Rename)
	out.Columns = slices.Clone(s.Columns)
	return out
}

func cloneFootballDataSpec(s FootballDataSpec) FootballDataSpec {
	return FootballDataSpec{
		Rename:         maps.Clone(s.Rename),
		KickoffLayouts: slices.Clone(s.KickoffLayouts),
		Categorical:    slices.Clone(s.Categorical),
		Numeric:        slices.Clone(s.Numeric),
		Columns:        slices.Clone(s.Columns),
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
