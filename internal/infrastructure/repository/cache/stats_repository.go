package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
	basecache "github.com/riskibarqy/football-etl/internal/platform/cache"
)

type cachedTable struct {
	value  stats.StoredTable
	exists bool
}

// StatsRepository serves GetTable from an in-process cache in front of the
// next repository. Writes go through and evict the written keys.
type StatsRepository struct {
	next  stats.Repository
	cache *basecache.Store[cachedTable]
}

func NewStatsRepository(next stats.Repository, ttl time.Duration) *StatsRepository {
	return &StatsRepository{next: next, cache: basecache.NewStore[cachedTable](ttl)}
}

func (r *StatsRepository) UpsertTables(ctx context.Context, items []stats.StoredTable) error {
	if err := r.next.UpsertTables(ctx, items); err != nil {
		return err
	}
	for _, item := range items {
		r.cache.Delete(ctx, tableCacheKey(item.Key))
	}
	return nil
}

func (r *StatsRepository) GetTable(ctx context.Context, key stats.TableKey) (stats.StoredTable, bool, error) {
	cached, err := r.cache.GetOrLoad(ctx, tableCacheKey(key), func(ctx context.Context) (cachedTable, error) {
		item, exists, err := r.next.GetTable(ctx, key)
		if err != nil {
			return cachedTable{}, err
		}
		return cachedTable{value: item, exists: exists}, nil
	})
	if err != nil {
		return stats.StoredTable{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *StatsRepository) ListTables(ctx context.Context, competition string, kind stats.StoredKind) ([]stats.StoredTable, error) {
	return r.next.ListTables(ctx, competition, kind)
}

func tableCacheKey(key stats.TableKey) string {
	return "stats:table:" + key.String()
}
