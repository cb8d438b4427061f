package etl

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
	"github.com/riskibarqy/football-etl/internal/domain/table"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

// SeasonBuilder turns the raw tables of one season into a SeasonRecord:
// the cleaned league table and fixtures, and per perspective one merged
// table per category. Category tables are cleaned later by the Aggregator.
type SeasonBuilder struct {
	catalog  Catalog
	merger   *Merger
	league   *LeagueTableCleaner
	fixtures *FixturesCleaner
	logger   *logging.Logger
}

func NewSeasonBuilder(catalog Catalog, merger *Merger, loc *time.Location, logger *logging.Logger) *SeasonBuilder {
	if logger == nil {
		logger = logging.Default()
	}
	if merger == nil {
		merger = NewMerger(false, logger)
	}
	return &SeasonBuilder{
		catalog:  catalog,
		merger:   merger,
		league:   NewLeagueTableCleaner(catalog),
		fixtures: NewFixturesCleaner(catalog, loc),
		logger:   logger,
	}
}

func (b *SeasonBuilder) Build(ctx context.Context, raw stats.RawSeason) (stats.SeasonRecord, error) {
	sources := make(map[stats.SourceTable]*table.Table, len(raw.Tables))
	for name, t := range raw.Tables {
		if t == nil {
			continue
		}
		stripped, err := StripPlaceholders(t)
		if err != nil {
			return stats.SeasonRecord{}, crerr.Wrapf(err, "season %s table %s", raw.Season, name)
		}
		sources[name] = stripped
	}

	record := stats.SeasonRecord{
		Season:       raw.Season,
		TeamData:     make(map[stats.Category]*table.Table),
		OpponentData: make(map[stats.Category]*table.Table),
		DroppedRows:  make(map[stats.Perspective]map[stats.Category]int),
	}

	league, err := b.buildLeagueTable(ctx, raw.Season, sources)
	if err != nil {
		return stats.SeasonRecord{}, err
	}
	record.LeagueTable = league

	if raw.Fixtures != nil {
		fixtures, err := b.fixtures.Clean(raw.Fixtures, raw.Season)
		if err != nil {
			return stats.SeasonRecord{}, crerr.Wrapf(err, "season %s fixtures", raw.Season)
		}
		record.Fixtures = fixtures
	}

	for _, p := range stats.Perspectives() {
		record.DroppedRows[p] = make(map[stats.Category]int)
		data := record.Data(p)
		for _, category := range stats.AllCategories() {
			spec, err := b.catalog.Category(category)
			if err != nil {
				return stats.SeasonRecord{}, err
			}
			result, err := b.mergeCategory(ctx, sources, spec, p)
			if err != nil {
				return stats.SeasonRecord{}, crerr.Wrapf(err, "season %s %s %s", raw.Season, p, category)
			}
			data[category] = result.Table
			record.DroppedRows[p][category] = result.Dropped
			if result.Dropped > 0 {
				b.logger.WarnContext(ctx, "category merge dropped rows",
					"season", raw.Season,
					"perspective", string(p),
					"category", string(category),
					"dropped", result.Dropped,
				)
			}
		}
	}

	b.logger.InfoContext(ctx, "season built",
		"season", raw.Season,
		"source_tables", len(sources),
		"league_rows", record.LeagueTable.NumRows(),
	)
	return record, nil
}

func (b *SeasonBuilder) buildLeagueTable(ctx context.Context, season string, sources map[stats.SourceTable]*table.Table) (*table.Table, error) {
	overall, ok := sources[stats.SourceLeagueTable]
	if !ok {
		return nil, newSchemaError("season "+season, []string{string(stats.SourceLeagueTable)}, nil)
	}
	split, ok := sources[stats.SourceLeagueTableSplit]
	if !ok {
		return nil, newSchemaError("season "+season, []string{string(stats.SourceLeagueTableSplit)}, nil)
	}
	merged, err := b.merger.Merge(ctx, overall, split, b.league.JoinKeys())
	if err != nil {
		return nil, crerr.Wrapf(err, "season %s league table", season)
	}
	cleaned, err := b.league.Clean(merged.Table)
	if err != nil {
		return nil, crerr.Wrapf(err, "season %s league table", season)
	}
	return cleaned, nil
}

func (b *SeasonBuilder) mergeCategory(ctx context.Context, sources map[stats.SourceTable]*table.Table, spec CategorySpec, p stats.Perspective) (MergeResult, error) {
	var missing []string
	for _, src := range spec.Sources() {
		if _, ok := sources[src.For(p)]; !ok {
			missing = append(missing, string(src.For(p)))
		}
	}
	if len(missing) > 0 {
		return MergeResult{}, newSchemaError("source tables", missing, nil)
	}

	inputs := make([]JoinInput, 0, len(spec.Merge))
	for _, step := range spec.Merge {
		name := step.Source.For(p)
		inputs = append(inputs, JoinInput{Name: string(name), Table: sources[name], Keys: step.Keys})
	}
	return b.merger.MergeAll(ctx, sources[spec.First.For(p)], inputs...)
}
