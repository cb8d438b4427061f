package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-etl/internal/domain/stats"
	"github.com/riskibarqy/football-etl/internal/domain/table"
	qb "github.com/riskibarqy/football-etl/internal/platform/querybuilder"
)

const statsTablesName = "stats_tables"

// Unchanged payloads keep their updated_at.
const upsertStatsTableSuffix = `ON CONFLICT (competition, kind, season, category, perspective)
DO UPDATE SET
    payload = EXCLUDED.payload,
    content_hash = EXCLUDED.content_hash,
    row_count = EXCLUDED.row_count,
    updated_at = EXCLUDED.updated_at
WHERE stats_tables.content_hash <> EXCLUDED.content_hash`

var statsTableColumns = qb.MustColumns(statsTableModel{})

type StatsRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db, now: time.Now}
}

func (r *StatsRepository) UpsertTables(ctx context.Context, items []stats.StoredTable) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert stats tables: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel, err := toStatsTableInsertModel(item, r.now().UTC())
		if err != nil {
			return fmt.Errorf("encode stats table key=%s: %w", item.Key, err)
		}

		query, args, err := qb.InsertModel(statsTablesName, insertModel, upsertStatsTableSuffix)
		if err != nil {
			return fmt.Errorf("build upsert stats table query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert stats table key=%s: %w", item.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert stats tables tx: %w", err)
	}

	return nil
}

func (r *StatsRepository) GetTable(ctx context.Context, key stats.TableKey) (stats.StoredTable, bool, error) {
	query, args, err := qb.Select(statsTableColumns...).From(statsTablesName).
		Where(
			qb.Eq("competition", key.Competition),
			qb.Eq("kind", string(key.Kind)),
			qb.Eq("season", key.Season),
			qb.Eq("category", string(key.Category)),
			qb.Eq("perspective", string(key.Perspective)),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return stats.StoredTable{}, false, fmt.Errorf("build select stats table query: %w", err)
	}

	var row statsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return stats.StoredTable{}, false, nil
		}
		return stats.StoredTable{}, false, fmt.Errorf("select stats table key=%s: %w", key, err)
	}

	item, err := fromStatsTableModel(row)
	if err != nil {
		return stats.StoredTable{}, false, err
	}
	return item, true, nil
}

func (r *StatsRepository) ListTables(ctx context.Context, competition string, kind stats.StoredKind) ([]stats.StoredTable, error) {
	query, args, err := qb.Select(statsTableColumns...).From(statsTablesName).
		Where(
			qb.Eq("competition", competition),
			qb.Eq("kind", string(kind)),
		).
		OrderBy("season", "category", "perspective").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list stats tables query: %w", err)
	}

	var rows []statsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list stats tables competition=%s kind=%s: %w", competition, kind, err)
	}

	out := make([]stats.StoredTable, 0, len(rows))
	for _, row := range rows {
		item, err := fromStatsTableModel(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func toStatsTableInsertModel(item stats.StoredTable, now time.Time) (statsTableInsertModel, error) {
	tbl := item.Table
	if tbl == nil {
		tbl = table.Empty()
	}

	payload, err := table.Encode(tbl)
	if err != nil {
		return statsTableInsertModel{}, err
	}

	hash := item.ContentHash
	if hash == "" {
		hash, err = table.Hash(tbl)
		if err != nil {
			return statsTableInsertModel{}, err
		}
	}

	updatedAt := item.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	return statsTableInsertModel{
		Competition: item.Key.Competition,
		Kind:        string(item.Key.Kind),
		Season:      item.Key.Season,
		Category:    string(item.Key.Category),
		Perspective: string(item.Key.Perspective),
		Payload:     string(payload),
		ContentHash: hash,
		RowCount:    tbl.NumRows(),
		UpdatedAt:   updatedAt,
	}, nil
}

func fromStatsTableModel(row statsTableModel) (stats.StoredTable, error) {
	key := stats.TableKey{
		Competition: row.Competition,
		Kind:        stats.StoredKind(row.Kind),
		Season:      row.Season,
		Category:    stats.Category(row.Category),
		Perspective: stats.Perspective(row.Perspective),
	}

	decoded, err := table.Decode(row.Payload)
	if err != nil {
		return stats.StoredTable{}, fmt.Errorf("decode stats table key=%s: %w", key, err)
	}

	return stats.StoredTable{
		Key:         key,
		Table:       decoded,
		ContentHash: row.ContentHash,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}
