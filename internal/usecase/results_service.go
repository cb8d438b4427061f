package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
	"github.com/riskibarqy/football-etl/internal/domain/table"
	"github.com/riskibarqy/football-etl/internal/etl"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

type FetchResultsInput struct {
	Seasons []string `validate:"required,min=1,dive,season"`
}

// ResultsService downloads and cleans match results with betting odds.
type ResultsService struct {
	fetcher     stats.ResultsFetcher
	cleaner     *etl.FootballDataCleaner
	repo        stats.Repository
	competition string
	validate    *validator.Validate
	logger      *logging.Logger
	now         func() time.Time
}

func NewResultsService(
	fetcher stats.ResultsFetcher,
	cleaner *etl.FootballDataCleaner,
	repo stats.Repository,
	competition string,
	logger *logging.Logger,
) *ResultsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultsService{
		fetcher:     fetcher,
		cleaner:     cleaner,
		repo:        repo,
		competition: competition,
		validate:    newValidator(),
		logger:      logger,
		now:         time.Now,
	}
}

// FetchResults returns the cleaned results table of every season, keyed
// by season label.
func (s *ResultsService) FetchResults(ctx context.Context, input FetchResultsInput) (map[string]*table.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsService.FetchResults", attribute.Int("seasons", len(input.Seasons)))
	defer span.End()

	if err := validateInput(ctx, s.validate, input); err != nil {
		return nil, err
	}
	if s.fetcher == nil || s.cleaner == nil {
		return nil, fmt.Errorf("%w: results fetcher is not configured", ErrDependencyUnavailable)
	}

	out := make(map[string]*table.Table, len(input.Seasons))
	items := make([]stats.StoredTable, 0, len(input.Seasons))
	for _, season := range uniqueSorted(input.Seasons) {
		raw, err := s.fetcher.FetchResults(ctx, season)
		if err != nil {
			return nil, fmt.Errorf("%w: fetch results %s: %w", ErrDependencyUnavailable, season, err)
		}
		cleaned, err := s.cleaner.Clean(raw, season)
		if err != nil {
			return nil, fmt.Errorf("clean results %s: %w", season, err)
		}
		out[season] = cleaned
		s.logger.InfoContext(ctx, "results cleaned", "season", season, "matches", cleaned.NumRows())

		item, err := newStoredTable(stats.TableKey{
			Competition: s.competition,
			Kind:        stats.KindResults,
			Season:      season,
		}, cleaned, s.now())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if s.repo != nil {
		if err := s.repo.UpsertTables(ctx, items); err != nil {
			return nil, fmt.Errorf("store results: %w", err)
		}
	}
	return out, nil
}
