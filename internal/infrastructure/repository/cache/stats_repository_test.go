package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
	statsmock "github.com/riskibarqy/football-etl/internal/mocks/domain/stats"
)

func TestStatsRepository_GetTableIsCachedUntilWritten(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := statsmock.NewRepository(t)
	repo := NewStatsRepository(next, 0)
	key := stats.TableKey{Competition: "Premier-League", Kind: stats.KindFixtures, Season: "2023_2024"}
	item := stats.StoredTable{Key: key, ContentHash: "abc"}

	next.On("GetTable", mock.Anything, key).Return(item, true, nil).Twice()
	next.On("UpsertTables", mock.Anything, []stats.StoredTable{item}).Return(nil).Once()

	for i := 0; i < 3; i++ {
		got, ok, err := repo.GetTable(ctx, key)
		if err != nil || !ok {
			t.Fatalf("get table: ok=%v err=%v", ok, err)
		}
		if got.ContentHash != "abc" {
			t.Fatalf("unexpected hash: got=%s want=abc", got.ContentHash)
		}
	}

	if err := repo.UpsertTables(ctx, []stats.StoredTable{item}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, _, err := repo.GetTable(ctx, key); err != nil {
		t.Fatalf("get table after write: %v", err)
	}
}

func TestStatsRepository_CachesMissesButNotErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := statsmock.NewRepository(t)
	repo := NewStatsRepository(next, 0)
	missing := stats.TableKey{Competition: "Premier-League", Kind: stats.KindResults, Season: "2019_2020"}
	broken := stats.TableKey{Competition: "Premier-League", Kind: stats.KindResults, Season: "2020_2021"}
	dbErr := errors.New("connection refused")

	next.On("GetTable", mock.Anything, missing).Return(stats.StoredTable{}, false, nil).Once()
	next.On("GetTable", mock.Anything, broken).Return(stats.StoredTable{}, false, dbErr).Twice()

	for i := 0; i < 2; i++ {
		if _, ok, err := repo.GetTable(ctx, missing); err != nil || ok {
			t.Fatalf("unexpected result for missing key: ok=%v err=%v", ok, err)
		}
		if _, _, err := repo.GetTable(ctx, broken); !errors.Is(err, dbErr) {
			t.Fatalf("unexpected error: got=%v want=%v", err, dbErr)
		}
	}
}

func TestStatsRepository_WriteFailureKeepsCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := statsmock.NewRepository(t)
	repo := NewStatsRepository(next, 0)
	dbErr := errors.New("deadlock detected")

	next.On("UpsertTables", mock.Anything, mock.Anything).Return(dbErr).Once()
	next.On("ListTables", mock.Anything, "Premier-League", stats.KindRanking).Return([]stats.StoredTable{{}}, nil).Once()

	if err := repo.UpsertTables(ctx, []stats.StoredTable{{}}); !errors.Is(err, dbErr) {
		t.Fatalf("unexpected error: got=%v want=%v", err, dbErr)
	}
	items, err := repo.ListTables(ctx, "Premier-League", stats.KindRanking)
	if err != nil || len(items) != 1 {
		t.Fatalf("unexpected list result: items=%d err=%v", len(items), err)
	}
}
