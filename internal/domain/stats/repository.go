package stats

import (
	"context"

	"github.com/riskibarqy/football-etl/internal/domain/table"
)

type Repository interface {
	UpsertTables(ctx context.Context, items []StoredTable) error
	GetTable(ctx context.Context, key TableKey) (StoredTable, bool, error)
	ListTables(ctx context.Context, competition string, kind StoredKind) ([]StoredTable, error)
}

// SeasonRequest addresses one competition season on the stats site.
type SeasonRequest struct {
	CompetitionID   string
	CompetitionName string
	Season          string
}

// SeasonFetcher returns the raw tables of one competition season keyed by
// source table name.
type SeasonFetcher interface {
	FetchSeason(ctx context.Context, req SeasonRequest) (RawSeason, error)
}

// ResultsFetcher returns the raw match results table of one season from the
// results provider.
type ResultsFetcher interface {
	FetchResults(ctx context.Context, season string) (*table.Table, error)
}
