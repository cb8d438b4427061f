package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
	"github.com/riskibarqy/football-etl/internal/domain/table"
	"github.com/riskibarqy/football-etl/internal/etl"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

const defaultSeasonWorkers = 2

type SeasonServiceConfig struct {
	CompetitionID   string
	CompetitionName string
	MaxWorkers      int
}

type FetchSeasonsInput struct {
	Seasons []string `validate:"required,min=1,dive,season"`
	// MaxWorkers overrides the configured pool size when positive.
	MaxWorkers int `validate:"gte=0"`
}

// SeasonService fetches and merges competition seasons.
type SeasonService struct {
	fetcher  stats.SeasonFetcher
	builder  *etl.SeasonBuilder
	repo     stats.Repository
	cfg      SeasonServiceConfig
	validate *validator.Validate
	logger   *logging.Logger
	now      func() time.Time
}

func NewSeasonService(
	fetcher stats.SeasonFetcher,
	builder *etl.SeasonBuilder,
	repo stats.Repository,
	cfg SeasonServiceConfig,
	logger *logging.Logger,
) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = defaultSeasonWorkers
	}
	return &SeasonService{
		fetcher:  fetcher,
		builder:  builder,
		repo:     repo,
		cfg:      cfg,
		validate: newValidator(),
		logger:   logger,
		now:      time.Now,
	}
}

// FetchSeasons fetches every requested season on a bounded worker pool,
// builds its SeasonRecord and, when a repository is configured, stores the
// league table and fixtures. Results are keyed by season label.
func (s *SeasonService) FetchSeasons(ctx context.Context, input FetchSeasonsInput) (map[string]stats.SeasonRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.FetchSeasons",
		attribute.Int("seasons", len(input.Seasons)))
	defer span.End()

	if err := validateInput(ctx, s.validate, input); err != nil {
		return nil, err
	}
	if s.fetcher == nil || s.builder == nil {
		return nil, fmt.Errorf("%w: season fetcher is not configured", ErrDependencyUnavailable)
	}

	labels := uniqueSorted(input.Seasons)
	workerCount := s.cfg.MaxWorkers
	if input.MaxWorkers > 0 {
		workerCount = input.MaxWorkers
	}
	if workerCount > len(labels) {
		workerCount = len(labels)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		records = make(map[string]stats.SeasonRecord, len(labels))
		errs    error
		workers sync.WaitGroup
	)
	for _, label := range labels {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			record, err := s.fetchSeason(ctx, label)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = crerr.CombineErrors(errs, err)
				s.logger.WarnContext(ctx, "season failed", "season", label, "error", err)
				return
			}
			records[label] = record
			s.logger.InfoContext(ctx, "season fetched",
				"season", label,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit season to worker pool: %w", err)
		}
	}
	workers.Wait()

	if errs != nil {
		return nil, errs
	}
	return records, nil
}

func (s *SeasonService) fetchSeason(ctx context.Context, label string) (stats.SeasonRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.fetchSeason", attribute.String("season", label))
	defer span.End()

	raw, err := s.fetcher.FetchSeason(ctx, stats.SeasonRequest{
		CompetitionID:   s.cfg.CompetitionID,
		CompetitionName: s.cfg.CompetitionName,
		Season:          label,
	})
	if err != nil {
		return stats.SeasonRecord{}, fmt.Errorf("%w: fetch season %s: %w", ErrDependencyUnavailable, label, err)
	}
	raw.Season = label

	record, err := s.builder.Build(ctx, raw)
	if err != nil {
		return stats.SeasonRecord{}, fmt.Errorf("build season %s: %w", label, err)
	}
	if err := s.persist(ctx, record); err != nil {
		return stats.SeasonRecord{}, err
	}
	return record, nil
}

func (s *SeasonService) persist(ctx context.Context, record stats.SeasonRecord) error {
	if s.repo == nil {
		return nil
	}
	items := make([]stats.StoredTable, 0, 2)
	add := func(kind stats.StoredKind, t *table.Table) error {
		if t == nil {
			return nil
		}
		item, err := newStoredTable(stats.TableKey{
			Competition: s.cfg.CompetitionName,
			Kind:        kind,
			Season:      record.Season,
		}, t, s.now())
		if err != nil {
			return err
		}
		items = append(items, item)
		return nil
	}
	if err := add(stats.KindLeagueTable, record.LeagueTable); err != nil {
		return err
	}
	if err := add(stats.KindFixtures, record.Fixtures); err != nil {
		return err
	}
	if err := s.repo.UpsertTables(ctx, items); err != nil {
		return fmt.Errorf("store season %s: %w", record.Season, err)
	}
	return nil
}

func newStoredTable(key stats.TableKey, t *table.Table, now time.Time) (stats.StoredTable, error) {
	hash, err := table.Hash(t)
	if err != nil {
		return stats.StoredTable{}, fmt.Errorf("hash %s table: %w", key.Kind, err)
	}
	return stats.StoredTable{
		Key:         key,
		Table:       t,
		ContentHash: hash,
		UpdatedAt:   now.UTC(),
	}, nil
}

func uniqueSorted(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
