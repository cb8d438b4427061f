package etl

import (
	"context"
	"slices"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
	"github.com/riskibarqy/football-etl/internal/domain/table"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

// Aggregator stacks one cleaned category across seasons.
type Aggregator struct {
	catalog Catalog
	logger  *logging.Logger
}

func NewAggregator(catalog Catalog, logger *logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Aggregator{catalog: catalog, logger: logger}
}

// Aggregate cleans category for every season, tags each row with its season
// label and returns the stacked table sorted by (Squad, season_name).
func (a *Aggregator) Aggregate(ctx context.Context, seasons map[string]stats.SeasonRecord, category stats.Category, perspective stats.Perspective) (stats.ComparisonRecord, error) {
	cleaner, err := NewCategoryCleaner(a.catalog, category)
	if err != nil {
		return stats.ComparisonRecord{}, err
	}

	labels := make([]string, 0, len(seasons))
	for label := range seasons {
		labels = append(labels, label)
	}
	slices.Sort(labels)

	parts := make([]*table.Table, 0, len(labels))
	for _, label := range labels {
		raw := seasons[label].Data(perspective)[category]
		if raw == nil {
			return stats.ComparisonRecord{}, newSchemaError("aggregate season "+label, []string{string(category)}, nil)
		}
		cleaned, err := cleaner.Clean(raw)
		if err != nil {
			return stats.ComparisonRecord{}, crerr.Wrapf(err, "aggregate season %s", label)
		}
		tagged, err := cleaned.WithColumn(cleaned.Fill(ColumnSeason, table.TypeCategorical, table.StringValue(label)))
		if err != nil {
			return stats.ComparisonRecord{}, newSchemaError("aggregate season "+label, nil, err)
		}
		parts = append(parts, tagged)
	}

	stacked, err := table.Concat(parts...)
	if err != nil {
		return stats.ComparisonRecord{}, newSchemaError("aggregate", nil, err)
	}
	indexed, err := indexFirst(stacked)
	if err != nil {
		return stats.ComparisonRecord{}, err
	}

	a.logger.DebugContext(ctx, "comparison aggregated",
		"category", string(category),
		"perspective", string(perspective),
		"seasons", len(labels),
		"rows", indexed.NumRows(),
		"columns", indexed.NumCols(),
	)
	return stats.ComparisonRecord{
		Category:    category,
		Perspective: perspective,
		Seasons:     labels,
		Table:       indexed,
	}, nil
}

// FilterComparison projects a comparison table onto the index columns and
// the category's comparison columns.
func (a *Aggregator) FilterComparison(record stats.ComparisonRecord) (*table.Table, error) {
	spec, err := a.catalog.Category(record.Category)
	if err != nil {
		return nil, err
	}
	if record.Table == nil || record.Table.NumCols() == 0 {
		return table.Empty(), nil
	}
	names := append([]string{ColumnSquad, ColumnSeason}, spec.Comparison...)
	if missing := record.Table.Missing(names...); len(missing) > 0 {
		return nil, newSchemaError("comparison view", missing, nil)
	}
	out, err := record.Table.Select(names...)
	if err != nil {
		return nil, newSchemaError("comparison view", nil, err)
	}
	return out, nil
}

// indexFirst moves Squad and season_name to the front and sorts by them.
func indexFirst(t *table.Table) (*table.Table, error) {
	if t.NumCols() == 0 {
		return t, nil
	}
	names := []string{ColumnSquad, ColumnSeason}
	for _, name := range t.Columns() {
		if name != ColumnSquad && name != ColumnSeason {
			names = append(names, name)
		}
	}
	if missing := t.Missing(ColumnSquad, ColumnSeason); len(missing) > 0 {
		return nil, newSchemaError("aggregate index", missing, nil)
	}
	ordered, err := t.Select(names...)
	if err != nil {
		return nil, newSchemaError("aggregate index", nil, err)
	}
	sorted, err := ordered.SortBy(ColumnSquad, ColumnSeason)
	if err != nil {
		return nil, newSchemaError("aggregate index", nil, err)
	}
	return sorted, nil
}
