package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
	"github.com/riskibarqy/football-etl/internal/domain/table"
	"github.com/riskibarqy/football-etl/internal/etl"
	statsmock "github.com/riskibarqy/football-etl/internal/mocks/domain/stats"
)

func rawResults(t *testing.T) *table.Table {
	t.Helper()

	header := []string{"Div", "Date", "Time", "HomeTeam", "AwayTeam", "FTHG", "FTAG", "FTR", "HTHG", "HTAG", "HTR", "B365H", "B365D", "B365A"}
	raw, err := table.FromRecords(header, [][]string{
		{"E0", "11/08/2023", "20:00", "Burnley", "Man City", "0", "3", "A", "0", "2", "A", "8", "5.5", "1.33"},
		{"E0", "12/08/2023", "12:30", "Arsenal", "Nott'm Forest", "2", "1", "H", "2", "0", "H", "1.18", "7.5", "15"},
	})
	if err != nil {
		t.Fatalf("raw results: %v", err)
	}
	return raw
}

func newTestResultsService(fetcher stats.ResultsFetcher, repo stats.Repository) *ResultsService {
	return NewResultsService(fetcher, etl.NewFootballDataCleaner(etl.DefaultCatalog(), time.UTC), repo, "Premier-League", nil)
}

func TestResultsService_FetchResults(t *testing.T) {
	t.Parallel()

	fetcher := statsmock.NewResultsFetcher(t)
	repo := statsmock.NewRepository(t)
	service := newTestResultsService(fetcher, repo)

	fetcher.On("FetchResults", mock.Anything, "2023_2024").Return(rawResults(t), nil).Once()
	repo.
		On("UpsertTables", mock.Anything, mock.MatchedBy(func(items []stats.StoredTable) bool {
			return len(items) == 1 &&
				items[0].Key == stats.TableKey{Competition: "Premier-League", Kind: stats.KindResults, Season: "2023_2024"}
		})).
		Return(nil).
		Once()

	got, err := service.FetchResults(context.Background(), FetchResultsInput{Seasons: []string{"2023_2024"}})
	if err != nil {
		t.Fatalf("fetch results: %v", err)
	}
	results, ok := got["2023_2024"]
	if !ok {
		t.Fatalf("missing 2023_2024 results")
	}
	if results.NumRows() != 2 {
		t.Fatalf("unexpected rows: got=%d want=2", results.NumRows())
	}
	kickoff, _ := results.Value("kickoff", 1)
	want := time.Date(2023, time.August, 12, 12, 30, 0, 0, time.UTC)
	if ts, ok := kickoff.Timestamp(); !ok || !ts.Equal(want) {
		t.Fatalf("unexpected kickoff: got=%v want=%v", kickoff, want)
	}
}

func TestResultsService_FetchResults_Errors(t *testing.T) {
	t.Parallel()

	t.Run("invalid season", func(t *testing.T) {
		t.Parallel()

		service := newTestResultsService(statsmock.NewResultsFetcher(t), nil)
		_, err := service.FetchResults(context.Background(), FetchResultsInput{Seasons: []string{"23/24"}})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("unexpected error: got=%v want=%v", err, ErrInvalidInput)
		}
	})

	t.Run("fetch failure", func(t *testing.T) {
		t.Parallel()

		fetcher := statsmock.NewResultsFetcher(t)
		fetcher.On("FetchResults", mock.Anything, "2022_2023").Return(nil, errors.New("timeout")).Once()

		service := newTestResultsService(fetcher, nil)
		_, err := service.FetchResults(context.Background(), FetchResultsInput{Seasons: []string{"2022_2023"}})
		if !errors.Is(err, ErrDependencyUnavailable) {
			t.Fatalf("unexpected error: got=%v want=%v", err, ErrDependencyUnavailable)
		}
	})

	t.Run("schema failure", func(t *testing.T) {
		t.Parallel()

		raw, err := table.FromRecords([]string{"Div", "Date"}, [][]string{{"E0", "11/08/2023"}})
		if err != nil {
			t.Fatalf("raw results: %v", err)
		}
		fetcher := statsmock.NewResultsFetcher(t)
		fetcher.On("FetchResults", mock.Anything, "2023_2024").Return(raw, nil).Once()

		service := newTestResultsService(fetcher, nil)
		_, err = service.FetchResults(context.Background(), FetchResultsInput{Seasons: []string{"2023_2024"}})
		if !errors.Is(err, etl.ErrSchema) {
			t.Fatalf("unexpected error: got=%v want=%v", err, etl.ErrSchema)
		}
	})
}
