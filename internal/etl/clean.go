package etl

import (
	"github.com/riskibarqy/football-etl/internal/domain/stats"
	"github.com/riskibarqy/football-etl/internal/domain/table"
)

// CategoryCleaner turns one merged category table into its cleaned form.
type CategoryCleaner struct {
	spec       CategorySpec
	normalizer Normalizer
}

// NewCategoryCleaner returns the cleaner for category, or a CategoryError.
func NewCategoryCleaner(catalog Catalog, category stats.Category) (*CategoryCleaner, error) {
	spec, err := catalog.Category(category)
	if err != nil {
		return nil, err
	}
	return &CategoryCleaner{
		spec:       spec,
		normalizer: NewNormalizer("clean "+string(category), spec.Rename, spec.required()),
	}, nil
}

func (c *CategoryCleaner) Category() stats.Category {
	return c.spec.Category
}

// ComparisonColumns lists the columns of the lightweight comparison view.
func (c *CategoryCleaner) ComparisonColumns() []string {
	return append([]string(nil), c.spec.Comparison...)
}

// Clean normalises headers, derives ratio and per-match columns, drops
// superseded columns and, when the category has one, applies the allow-list.
func (c *CategoryCleaner) Clean(t *table.Table) (*table.Table, error) {
	out, err := c.normalizer.Apply(t)
	if err != nil {
		return nil, err
	}
	if out, err = categorical(out, ColumnSquad); err != nil {
		return nil, err
	}

	numeric := []string{ColumnMatches}
	numeric = append(numeric, c.spec.Totals...)
	for _, r := range c.spec.Ratios {
		numeric = append(numeric, r.Numerator, r.Denominator)
	}
	if out, err = coerceNumeric(out, dedupe(numeric)...); err != nil {
		return nil, err
	}

	for _, r := range c.spec.Ratios {
		if out, err = withRatio(out, r); err != nil {
			return nil, err
		}
	}
	for _, total := range c.spec.Totals {
		perMatch := Ratio{Name: total + perMatchSuffix, Numerator: total, Denominator: ColumnMatches, Round: true}
		if out, err = withRatio(out, perMatch); err != nil {
			return nil, err
		}
	}

	if len(c.spec.Drop) > 0 {
		if out, err = out.Drop(c.spec.Drop...); err != nil {
			return nil, newSchemaError("drop", c.spec.Drop, err)
		}
	}
	if len(c.spec.Keep) > 0 {
		if missing := out.Missing(c.spec.Keep...); len(missing) > 0 {
			return nil, newSchemaError("select", missing, nil)
		}
		if out, err = out.Select(c.spec.Keep...); err != nil {
			return nil, newSchemaError("select", nil, err)
		}
	}
	return out, nil
}
