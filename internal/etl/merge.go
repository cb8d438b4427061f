package etl

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/football-etl/internal/domain/table"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

const (
	leftSuffix  = "_x"
	rightSuffix = "_y"
	keySep      = "\x1f"
)

// MergeResult is an inner-join output plus the number of rows, across both
// inputs, that found no partner on the join key.
type MergeResult struct {
	Table   *table.Table
	Dropped int
}

// JoinInput is one right-hand table of a left-to-right merge chain.
type JoinInput struct {
	Name  string
	Table *table.Table
	Keys  []string
}

// Merger performs exact-match joins of per-category sub-tables.
type Merger struct {
	strict bool
	logger *logging.Logger
}

// NewMerger builds a merger. With strict set, any unmatched row fails the
// merge instead of being dropped and counted.
func NewMerger(strict bool, logger *logging.Logger) *Merger {
	if logger == nil {
		logger = logging.Default()
	}
	return &Merger{strict: strict, logger: logger}
}

// MergeAll joins first with every input in order. Dropped counts add up.
func (m *Merger) MergeAll(ctx context.Context, first *table.Table, inputs ...JoinInput) (MergeResult, error) {
	result := MergeResult{Table: first}
	for _, in := range inputs {
		step, err := m.Merge(ctx, result.Table, in.Table, in.Keys)
		if err != nil {
			return MergeResult{}, crerr.Wrapf(err, "merge %s", in.Name)
		}
		result.Table = step.Table
		result.Dropped += step.Dropped
	}
	return result, nil
}

// Merge inner-joins left and right on keys. Output rows follow left's order.
// Non-key columns present on both sides get _x and _y suffixes.
func (m *Merger) Merge(ctx context.Context, left, right *table.Table, keys []string) (MergeResult, error) {
	if left == nil || right == nil {
		return MergeResult{}, newSchemaError("merge", keys, crerr.New("nil table"))
	}
	if missing := left.Missing(keys...); len(missing) > 0 {
		return MergeResult{}, newSchemaError("merge left", missing, nil)
	}
	if missing := right.Missing(keys...); len(missing) > 0 {
		return MergeResult{}, newSchemaError("merge right", missing, nil)
	}

	leftKeys, err := rowKeys(left, keys)
	if err != nil {
		return MergeResult{}, err
	}
	rightKeys, err := rowKeys(right, keys)
	if err != nil {
		return MergeResult{}, err
	}
	rightIndex := make(map[string]int, len(rightKeys))
	for i, k := range rightKeys {
		rightIndex[k] = i
	}

	leftRows := make([]int, 0, len(leftKeys))
	rightRows := make([]int, 0, len(leftKeys))
	for i, k := range leftKeys {
		j, ok := rightIndex[k]
		if !ok {
			continue
		}
		leftRows = append(leftRows, i)
		rightRows = append(rightRows, j)
	}
	matched := len(leftRows)
	dropped := (len(leftKeys) - matched) + (len(rightKeys) - matched)

	if matched == 0 && (len(leftKeys) > 0 || len(rightKeys) > 0) {
		return MergeResult{}, crerr.WithStack(&JoinMismatchError{Keys: keys, Dropped: dropped, Reason: "no rows matched"})
	}
	if dropped > 0 {
		if m.strict {
			return MergeResult{}, crerr.WithStack(&JoinMismatchError{Keys: keys, Dropped: dropped, Reason: "unmatched rows"})
		}
		m.logger.WarnContext(ctx, "merge dropped unmatched rows",
			"keys", strings.Join(keys, ","),
			"dropped", dropped,
			"matched", matched,
		)
	}

	out, err := joinColumns(left.Take(leftRows), right.Take(rightRows), keys)
	if err != nil {
		return MergeResult{}, err
	}
	return MergeResult{Table: out, Dropped: dropped}, nil
}

func rowKeys(t *table.Table, keys []string) ([]string, error) {
	cols := make([]table.Column, len(keys))
	for i, key := range keys {
		cols[i], _ = t.Column(key)
	}
	out := make([]string, t.NumRows())
	seen := make(map[string]struct{}, t.NumRows())
	parts := make([]string, len(keys))
	for r := range out {
		for i, col := range cols {
			parts[i] = col.Values[r].String()
		}
		k := strings.Join(parts, keySep)
		if _, dup := seen[k]; dup {
			return nil, crerr.WithStack(&JoinMismatchError{
				Keys:   keys,
				Reason: "duplicate key " + strings.ReplaceAll(k, keySep, "/"),
			})
		}
		seen[k] = struct{}{}
		out[r] = k
	}
	return out, nil
}

func joinColumns(left, right *table.Table, keys []string) (*table.Table, error) {
	isKey := make(map[string]bool, len(keys))
	for _, k := range keys {
		isKey[k] = true
	}
	cols := make([]table.Column, 0, left.NumCols()+right.NumCols())
	for _, name := range left.Columns() {
		col, _ := left.Column(name)
		if !isKey[name] && right.Has(name) {
			col.Name = name + leftSuffix
		}
		cols = append(cols, col)
	}
	for _, name := range right.Columns() {
		if isKey[name] {
			continue
		}
		col, _ := right.Column(name)
		if left.Has(name) {
			col.Name = name + rightSuffix
		}
		cols = append(cols, col)
	}
	out, err := table.New(cols...)
	if err != nil {
		return nil, newSchemaError("merge", nil, err)
	}
	return out, nil
}
