package etl

import (
	"strings"
	"time"

	"github.com/riskibarqy/football-etl/internal/domain/table"
)

// FootballDataCleaner turns a results-provider CSV table into the canonical
// results record for one season.
type FootballDataCleaner struct {
	spec FootballDataSpec
	loc  *time.Location
}

func NewFootballDataCleaner(catalog Catalog, loc *time.Location) *FootballDataCleaner {
	if loc == nil {
		loc = time.UTC
	}
	return &FootballDataCleaner{spec: catalog.FootballData(), loc: loc}
}

func (c *FootballDataCleaner) Clean(t *table.Table, season string) (*table.Table, error) {
	out, err := t.RenameFunc(strings.ToLower)
	if err != nil {
		return nil, newSchemaError("clean football-data", nil, err)
	}
	if out, err = out.Rename(c.spec.Rename); err != nil {
		return nil, newSchemaError("clean football-data", nil, err)
	}

	required := make([]string, 0, len(c.spec.Columns))
	for _, col := range c.spec.Columns {
		if col != columnKickoff && col != ColumnSeason {
			required = append(required, col)
		}
	}
	if missing := out.Missing(required...); len(missing) > 0 {
		return nil, newSchemaError("clean football-data", missing, nil)
	}

	kickoff, err := combineKickoff(out, "date", "time", c.loc, c.spec.KickoffLayouts)
	if err != nil {
		return nil, err
	}
	if out, err = out.WithColumn(kickoff); err != nil {
		return nil, newSchemaError("clean football-data", nil, err)
	}
	if out, err = out.WithColumn(out.Fill(ColumnSeason, table.TypeText, table.StringValue(season))); err != nil {
		return nil, newSchemaError("clean football-data", nil, err)
	}
	if out, err = categorical(out, c.spec.Categorical...); err != nil {
		return nil, err
	}
	if out, err = coerceNumeric(out, c.spec.Numeric...); err != nil {
		return nil, err
	}
	if out, err = out.Select(c.spec.Columns...); err != nil {
		return nil, newSchemaError("clean football-data", nil, err)
	}
	return out, nil
}
