package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
)

// StatsRepository keeps stored tables in process memory.
type StatsRepository struct {
	mu    sync.RWMutex
	items map[string]stats.StoredTable
}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{items: make(map[string]stats.StoredTable)}
}

// UpsertTables replaces tables by key. A table whose content hash did not
// change keeps its previous UpdatedAt.
func (r *StatsRepository) UpsertTables(_ context.Context, items []stats.StoredTable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		key := item.Key.String()
		if existing, ok := r.items[key]; ok && existing.ContentHash == item.ContentHash && item.ContentHash != "" {
			continue
		}
		r.items[key] = item
	}
	return nil
}

func (r *StatsRepository) GetTable(_ context.Context, key stats.TableKey) (stats.StoredTable, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[key.String()]
	if !ok {
		return stats.StoredTable{}, false, nil
	}
	return item, true, nil
}

// ListTables returns the tables of one kind ordered by season, category and
// perspective.
func (r *StatsRepository) ListTables(_ context.Context, competition string, kind stats.StoredKind) ([]stats.StoredTable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.StoredTable, 0)
	for _, item := range r.items {
		if item.Key.Competition == competition && item.Key.Kind == kind {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Key, out[j].Key
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Perspective < b.Perspective
	})
	return out, nil
}
