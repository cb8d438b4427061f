package etl

import (
	"slices"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/football-etl/internal/domain/table"
)

const (
	columnHomeScore = "home_score"
	columnAwayScore = "away_score"
	columnKickoff   = "kickoff"
)

var ErrScoreFormat = crerr.New("score is not two numbers")

// FixturesCleaner cleans a season schedule: splits the score, combines
// date and time into a kickoff timestamp, tags the season and projects
// onto the fixture columns.
type FixturesCleaner struct {
	spec FixturesSpec
	loc  *time.Location
}

func NewFixturesCleaner(catalog Catalog, loc *time.Location) *FixturesCleaner {
	if loc == nil {
		loc = time.UTC
	}
	return &FixturesCleaner{spec: catalog.Fixtures(), loc: loc}
}

func (c *FixturesCleaner) Clean(t *table.Table, season string) (*table.Table, error) {
	required := []string{c.spec.ScoreColumn}
	for raw := range c.spec.Rename {
		required = append(required, raw)
	}
	if missing := t.Missing(required...); len(missing) > 0 {
		slices.Sort(missing)
		return nil, newSchemaError("clean fixtures", missing, nil)
	}

	home, away, err := c.splitScores(t)
	if err != nil {
		return nil, err
	}
	kickoff, err := combineKickoff(t, c.spec.DateColumn, c.spec.TimeColumn, c.loc, c.spec.KickoffLayouts)
	if err != nil {
		return nil, err
	}

	out := t
	for _, col := range []table.Column{home, away, kickoff} {
		if out, err = out.WithColumn(col); err != nil {
			return nil, newSchemaError("clean fixtures", nil, err)
		}
	}
	if out, err = out.Rename(c.spec.Rename); err != nil {
		return nil, newSchemaError("clean fixtures", nil, err)
	}
	if out, err = out.WithColumn(out.Fill(ColumnSeason, table.TypeCategorical, table.StringValue(season))); err != nil {
		return nil, newSchemaError("clean fixtures", nil, err)
	}
	if out, err = coerceNumeric(out, c.spec.Numeric...); err != nil {
		return nil, err
	}
	if out, err = c.parseDates(out); err != nil {
		return nil, err
	}
	if out, err = categorical(out, c.spec.Categorical...); err != nil {
		return nil, err
	}
	if out, err = out.Select(c.spec.Columns...); err != nil {
		return nil, newSchemaError("clean fixtures", nil, err)
	}
	return out, nil
}

// splitScores reads "home–away" cells. Cells that are not text, such as
// unplayed fixtures, yield missing scores.
func (c *FixturesCleaner) splitScores(t *table.Table) (table.Column, table.Column, error) {
	score, _ := t.Column(c.spec.ScoreColumn)
	home := make([]table.Value, len(score.Values))
	away := make([]table.Value, len(score.Values))
	for i, v := range score.Values {
		if v.Kind() != table.KindString {
			continue
		}
		parts := strings.Split(v.Text(), c.spec.ScoreSeparator)
		if len(parts) != 2 {
			return table.Column{}, table.Column{}, crerr.WithStack(&ParseError{Column: c.spec.ScoreColumn, Row: i, Input: v.Text(), Cause: ErrScoreFormat})
		}
		h, okH := table.ParseNumber(parts[0])
		a, okA := table.ParseNumber(parts[1])
		if !okH || !okA {
			return table.Column{}, table.Column{}, crerr.WithStack(&ParseError{Column: c.spec.ScoreColumn, Row: i, Input: v.Text(), Cause: ErrScoreFormat})
		}
		home[i] = table.NumberValue(h)
		away[i] = table.NumberValue(a)
	}
	return table.Column{Name: columnHomeScore, Type: table.TypeNumeric, Values: home},
		table.Column{Name: columnAwayScore, Type: table.TypeNumeric, Values: away},
		nil
}

func (c *FixturesCleaner) parseDates(t *table.Table) (*table.Table, error) {
	name := c.spec.Rename[c.spec.DateColumn]
	col, ok := t.Column(name)
	if !ok {
		return nil, newSchemaError("clean fixtures", []string{name}, nil)
	}
	for i, v := range col.Values {
		if v.Kind() != table.KindString {
			continue
		}
		ts, err := table.ParseTime(v.Text(), c.loc, c.spec.DateLayouts...)
		if err != nil {
			return nil, crerr.WithStack(&ParseError{Column: name, Row: i, Input: v.Text(), Cause: err})
		}
		col.Values[i] = table.TimeValue(ts)
	}
	col.Type = table.TypeTimestamp
	out, err := t.WithColumn(col)
	if err != nil {
		return nil, newSchemaError("clean fixtures", nil, err)
	}
	return out, nil
}

// combineKickoff concatenates the date and time cells with a space and
// parses the result. A row missing either part has no kickoff.
func combineKickoff(t *table.Table, dateCol, timeCol string, loc *time.Location, layouts []string) (table.Column, error) {
	dates, ok := t.Column(dateCol)
	if !ok {
		return table.Column{}, newSchemaError("kickoff", []string{dateCol}, nil)
	}
	times, ok := t.Column(timeCol)
	if !ok {
		return table.Column{}, newSchemaError("kickoff", []string{timeCol}, nil)
	}
	values := make([]table.Value, t.NumRows())
	for i := range values {
		d, tm := dates.Values[i], times.Values[i]
		if d.IsMissing() || tm.IsMissing() {
			continue
		}
		raw := d.Text() + " " + tm.Text()
		ts, err := table.ParseTime(raw, loc, layouts...)
		if err != nil {
			return table.Column{}, crerr.WithStack(&ParseError{Column: columnKickoff, Row: i, Input: raw, Cause: err})
		}
		values[i] = table.TimeValue(ts)
	}
	return table.Column{Name: columnKickoff, Type: table.TypeTimestamp, Values: values}, nil
}
