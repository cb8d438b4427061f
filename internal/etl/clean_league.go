package etl

import (
	"slices"

	"github.com/riskibarqy/football-etl/internal/domain/table"
)

// LeagueTableCleaner projects the merged league table onto its fixed
// columns, renames the symbol columns and derives per-game rates.
type LeagueTableCleaner struct {
	spec LeagueTableSpec
}

func NewLeagueTableCleaner(catalog Catalog) *LeagueTableCleaner {
	return &LeagueTableCleaner{spec: catalog.LeagueTable()}
}

func (c *LeagueTableCleaner) JoinKeys() []string {
	return slices.Clone(c.spec.JoinKeys)
}

func (c *LeagueTableCleaner) Clean(t *table.Table) (*table.Table, error) {
	if missing := t.Missing(c.spec.Columns...); len(missing) > 0 {
		return nil, newSchemaError("clean league table", missing, nil)
	}
	out, err := t.Select(c.spec.Columns...)
	if err != nil {
		return nil, newSchemaError("clean league table", nil, err)
	}
	if out, err = categorical(out, ColumnSquad); err != nil {
		return nil, err
	}
	numeric := make([]string, 0, len(c.spec.Columns))
	for _, col := range c.spec.Columns {
		if col != ColumnSquad {
			numeric = append(numeric, col)
		}
	}
	if out, err = coerceNumeric(out, numeric...); err != nil {
		return nil, err
	}
	if out, err = out.Rename(c.spec.Rename); err != nil {
		return nil, newSchemaError("clean league table", nil, err)
	}
	for _, r := range c.spec.Ratios {
		if out, err = withRatio(out, r); err != nil {
			return nil, err
		}
	}
	return out, nil
}
