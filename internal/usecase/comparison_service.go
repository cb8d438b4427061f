package usecase

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
	"github.com/riskibarqy/football-etl/internal/domain/table"
	"github.com/riskibarqy/football-etl/internal/etl"
	"github.com/riskibarqy/football-etl/internal/platform/cache"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

const defaultComparisonWorkers = 4

type ComparisonServiceConfig struct {
	Competition string
	MaxWorkers  int
}

type ComparisonInput struct {
	Category    string `validate:"required"`
	Perspective string `validate:"required,perspective"`
	// Filter narrows the table to the category's comparison columns.
	Filter bool
}

// ComparisonService stacks categories across seasons and ranks them.
type ComparisonService struct {
	aggregator *etl.Aggregator
	repo       stats.Repository
	cache      *cache.Store[stats.ComparisonRecord]
	cfg        ComparisonServiceConfig
	validate   *validator.Validate
	logger     *logging.Logger
	now        func() time.Time
}

func NewComparisonService(
	aggregator *etl.Aggregator,
	repo stats.Repository,
	store *cache.Store[stats.ComparisonRecord],
	cfg ComparisonServiceConfig,
	logger *logging.Logger,
) *ComparisonService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = defaultComparisonWorkers
	}
	return &ComparisonService{
		aggregator: aggregator,
		repo:       repo,
		cache:      store,
		cfg:        cfg,
		validate:   newValidator(),
		logger:     logger,
		now:        time.Now,
	}
}

// Comparison returns one category stacked across seasons, indexed by
// (Squad, season_name). Results are cached per season content.
func (s *ComparisonService) Comparison(ctx context.Context, seasons map[string]stats.SeasonRecord, input ComparisonInput) (stats.ComparisonRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ComparisonService.Comparison",
		attribute.String("category", input.Category),
		attribute.String("perspective", input.Perspective))
	defer span.End()

	if err := validateInput(ctx, s.validate, input); err != nil {
		return stats.ComparisonRecord{}, err
	}
	category, err := etl.ParseCategory(input.Category)
	if err != nil {
		return stats.ComparisonRecord{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if len(seasons) == 0 {
		return stats.ComparisonRecord{}, fmt.Errorf("%w: at least one season is required", ErrInvalidInput)
	}
	perspective := stats.Perspective(input.Perspective)

	load := func(ctx context.Context) (stats.ComparisonRecord, error) {
		record, err := s.aggregator.Aggregate(ctx, seasons, category, perspective)
		if err != nil {
			return stats.ComparisonRecord{}, fmt.Errorf("aggregate %s %s: %w", category, perspective, err)
		}
		if input.Filter {
			view, err := s.aggregator.FilterComparison(record)
			if err != nil {
				return stats.ComparisonRecord{}, fmt.Errorf("filter %s %s: %w", category, perspective, err)
			}
			record.Table = view
		}
		return record, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	key, err := comparisonCacheKey(seasons, category, perspective, input.Filter)
	if err != nil {
		s.logger.WarnContext(ctx, "comparison cache bypassed", "category", category, "perspective", perspective, "error", err)
		return load(ctx)
	}
	return s.cache.GetOrLoad(ctx, key, load)
}

// BuildAll builds the comparison of each requested category for both
// perspectives concurrently, stores them and returns them in category then
// perspective order. No categories means all of them; categories left out
// are neither built nor stored.
func (s *ComparisonService) BuildAll(ctx context.Context, seasons map[string]stats.SeasonRecord, categories []stats.Category, filter bool) ([]stats.ComparisonRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ComparisonService.BuildAll",
		attribute.Int("seasons", len(seasons)),
		attribute.Int("categories", len(categories)))
	defer span.End()

	if len(categories) == 0 {
		categories = stats.AllCategories()
	}
	selected := make([]stats.Category, 0, len(categories))
	for _, category := range categories {
		if !category.Valid() {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, &etl.CategoryError{Category: string(category)})
		}
		if !slices.Contains(selected, category) {
			selected = append(selected, category)
		}
	}

	p := pool.NewWithResults[stats.ComparisonRecord]().
		WithContext(ctx).
		WithMaxGoroutines(s.cfg.MaxWorkers).
		WithCancelOnError()
	for _, category := range selected {
		for _, perspective := range stats.Perspectives() {
			p.Go(func(ctx context.Context) (stats.ComparisonRecord, error) {
				return s.Comparison(ctx, seasons, ComparisonInput{
					Category:    string(category),
					Perspective: string(perspective),
					Filter:      filter,
				})
			})
		}
	}
	records, err := p.Wait()
	if err != nil {
		return nil, err
	}
	sortComparisons(records)

	if err := s.store(ctx, records); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "comparisons built",
		"competition", s.cfg.Competition,
		"seasons", len(seasons),
		"tables", len(records),
	)
	return records, nil
}

// Ranking ranks the teams of one season within a comparison.
func (s *ComparisonService) Ranking(ctx context.Context, record stats.ComparisonRecord, season string) (*table.Table, error) {
	_, span := startUsecaseSpan(ctx, "usecase.ComparisonService.Ranking", attribute.String("season", season))
	defer span.End()

	if !ValidSeasonLabel(season) {
		return nil, fmt.Errorf("%w: season=%q", ErrInvalidInput, season)
	}
	if !containsString(record.Seasons, season) {
		return nil, fmt.Errorf("%w: season %s not in %s comparison", ErrNotFound, season, record.Category)
	}
	ranked, err := etl.RankSeason(record.Table, season)
	if err != nil {
		return nil, fmt.Errorf("rank %s %s: %w", record.Category, season, err)
	}
	return ranked, nil
}

func (s *ComparisonService) store(ctx context.Context, records []stats.ComparisonRecord) error {
	if s.repo == nil {
		return nil
	}
	now := s.now()
	items := make([]stats.StoredTable, 0, len(records)*3)
	for _, record := range records {
		item, err := newStoredTable(stats.TableKey{
			Competition: s.cfg.Competition,
			Kind:        stats.KindComparison,
			Category:    record.Category,
			Perspective: record.Perspective,
		}, record.Table, now)
		if err != nil {
			return err
		}
		items = append(items, item)

		for _, season := range record.Seasons {
			ranked, err := etl.RankSeason(record.Table, season)
			if err != nil {
				return fmt.Errorf("rank %s %s: %w", record.Category, season, err)
			}
			item, err := newStoredTable(stats.TableKey{
				Competition: s.cfg.Competition,
				Kind:        stats.KindRanking,
				Season:      season,
				Category:    record.Category,
				Perspective: record.Perspective,
			}, ranked, now)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
	}
	if err := s.repo.UpsertTables(ctx, items); err != nil {
		return fmt.Errorf("store comparisons: %w", err)
	}
	return nil
}

// comparisonCacheKey identifies a comparison by the content of the season
// tables it stacks, so rebuilt seasons under the same labels miss the cache.
func comparisonCacheKey(seasons map[string]stats.SeasonRecord, category stats.Category, perspective stats.Perspective, filter bool) (string, error) {
	labels := make([]string, 0, len(seasons))
	for label := range seasons {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		hash, err := table.Hash(seasons[label].Data(perspective)[category])
		if err != nil {
			return "", fmt.Errorf("hash %s %s %s: %w", label, category, perspective, err)
		}
		parts = append(parts, label+"="+hash)
	}
	return fmt.Sprintf("comparison:%s:%s:%t:%s", category, perspective, filter, strings.Join(parts, ",")), nil
}

func sortComparisons(records []stats.ComparisonRecord) {
	order := make(map[stats.Category]int)
	for i, c := range stats.AllCategories() {
		order[c] = i
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Category != records[j].Category {
			return order[records[i].Category] < order[records[j].Category]
		}
		return records[i].Perspective == stats.PerspectiveTeam && records[j].Perspective != stats.PerspectiveTeam
	})
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
