package etl

import (
	"sort"

	"github.com/riskibarqy/football-etl/internal/domain/table"
)

const rankSuffix = "_rank"

var rankExcluded = map[string]bool{
	ColumnSquad:   true,
	ColumnSeason:  true,
	ColumnMatches: true,
}

// Rank computes, for every numeric column except the identity and volume
// columns, a descending fractional rank: the highest value ranks 1 and tied
// values share the mean of the positions they span. Missing cells stay
// missing and do not take a position. Rows keep their input order and the
// identity columns are carried over in front.
func Rank(t *table.Table) (*table.Table, error) {
	cols := make([]table.Column, 0, t.NumCols())
	for _, name := range []string{ColumnSquad, ColumnSeason} {
		if col, ok := t.Column(name); ok {
			cols = append(cols, col)
		}
	}
	for _, name := range t.Columns() {
		if rankExcluded[name] {
			continue
		}
		col, _ := t.Column(name)
		if col.Type != table.TypeNumeric {
			continue
		}
		cols = append(cols, table.Column{
			Name:   name + rankSuffix,
			Type:   table.TypeNumeric,
			Values: FractionalRank(col.Values),
		})
	}
	out, err := table.New(cols...)
	if err != nil {
		return nil, newSchemaError("rank", nil, err)
	}
	return out, nil
}

// RankSeason ranks the rows of one season of a comparison table.
func RankSeason(comparison *table.Table, season string) (*table.Table, error) {
	seasons, ok := comparison.Column(ColumnSeason)
	if !ok {
		return nil, newSchemaError("rank season", []string{ColumnSeason}, nil)
	}
	slice := comparison.Filter(func(row int) bool {
		return seasons.Values[row].Text() == season
	})
	return Rank(slice)
}

// FractionalRank ranks values in descending order with averaged ties.
func FractionalRank(values []table.Value) []table.Value {
	type entry struct {
		row int
		v   float64
	}
	entries := make([]entry, 0, len(values))
	for i, v := range values {
		if f, ok := v.Number(); ok {
			entries = append(entries, entry{row: i, v: f})
		}
	}
	sort.SliceStable(entries, func(a, b int) bool { return entries[a].v > entries[b].v })

	out := make([]table.Value, len(values))
	for i := 0; i < len(entries); {
		j := i
		for j+1 < len(entries) && entries[j+1].v == entries[i].v {
			j++
		}
		// positions i..j (0-based) share the mean of ranks i+1..j+1
		rank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			out[entries[k].row] = table.NumberValue(rank)
		}
		i = j + 1
	}
	return out
}
