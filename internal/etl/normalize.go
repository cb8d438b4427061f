package etl

import (
	"maps"
	"slices"
	"strings"

	"github.com/riskibarqy/football-etl/internal/domain/table"
)

const (
	placeholderMarker = "Unnamed"
	placeholderLevel  = "level"
)

var symbolReplacer = []struct{ old, new string }{
	{" ", "_"},
	{"/", "_per_"},
	{"+", "_plus_"},
	{"-", "_minus_"},
	{"%", "_perc"},
}

// NormalizeName rewrites a header into the canonical naming scheme. The
// substitutions run in a fixed order, so the result never contains a
// substituted symbol and applying it twice is a no-op.
func NormalizeName(name string) string {
	for _, r := range symbolReplacer {
		name = strings.ReplaceAll(name, r.old, r.new)
	}
	return name
}

// StripPlaceholder removes the "Unnamed: N_level_M" prefix that header
// flattening leaves on columns without an upper header level, keeping
// the trailing semantic tokens.
func StripPlaceholder(name string) string {
	if !strings.Contains(name, placeholderMarker) {
		return name
	}
	parts := strings.Split(name, "_")
	for i, part := range parts {
		if part != placeholderLevel {
			continue
		}
		if i+2 >= len(parts) {
			return name
		}
		return strings.Join(parts[i+2:], "_")
	}
	return name
}

// StripPlaceholders applies StripPlaceholder to every header of t.
func StripPlaceholders(t *table.Table) (*table.Table, error) {
	out, err := t.RenameFunc(StripPlaceholder)
	if err != nil {
		return nil, newSchemaError("strip placeholders", nil, err)
	}
	return out, nil
}

// Normalizer canonicalises headers, applies a rename mapping and checks
// that the columns a later step reads are present.
type Normalizer struct {
	step     string
	rename   map[string]string
	required []string
}

func NewNormalizer(step string, rename map[string]string, required []string) Normalizer {
	return Normalizer{
		step:     step,
		rename:   maps.Clone(rename),
		required: slices.Clone(required),
	}
}

// Apply returns a new table with normalised and renamed headers.
func (n Normalizer) Apply(t *table.Table) (*table.Table, error) {
	out, err := t.RenameFunc(func(name string) string {
		name = NormalizeName(StripPlaceholder(name))
		if renamed, ok := n.rename[name]; ok {
			return renamed
		}
		return name
	})
	if err != nil {
		return nil, newSchemaError(n.step, nil, err)
	}
	if missing := out.Missing(n.required...); len(missing) > 0 {
		return nil, newSchemaError(n.step, missing, nil)
	}
	return out, nil
}
