package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-etl/external/fbref"
	"github.com/riskibarqy/football-etl/external/footballdata"
	"github.com/riskibarqy/football-etl/internal/config"
	"github.com/riskibarqy/football-etl/internal/domain/stats"
	"github.com/riskibarqy/football-etl/internal/etl"
	cacherepo "github.com/riskibarqy/football-etl/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/football-etl/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-etl/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-etl/internal/platform/cache"
	idgen "github.com/riskibarqy/football-etl/internal/platform/id"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
	"github.com/riskibarqy/football-etl/internal/platform/resilience"
	"github.com/riskibarqy/football-etl/internal/report"
	"github.com/riskibarqy/football-etl/internal/usecase"
)

const reportMaxRows = 20

// Option overrides a collaborator built from config.
type Option func(*options)

type options struct {
	seasonFetcher  stats.SeasonFetcher
	resultsFetcher stats.ResultsFetcher
	repository     stats.Repository
	output         io.Writer
	ids            idgen.Generator
}

func WithSeasonFetcher(f stats.SeasonFetcher) Option {
	return func(o *options) { o.seasonFetcher = f }
}

func WithResultsFetcher(f stats.ResultsFetcher) Option {
	return func(o *options) { o.resultsFetcher = f }
}

func WithRepository(r stats.Repository) Option {
	return func(o *options) { o.repository = r }
}

func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

func WithIDGenerator(g idgen.Generator) Option {
	return func(o *options) { o.ids = g }
}

// App runs the season comparison pipeline once per Run call.
type App struct {
	cfg         config.Config
	logger      *logging.Logger
	db          *sqlx.DB
	repo        stats.Repository
	seasons     *usecase.SeasonService
	comparisons *usecase.ComparisonService
	results     *usecase.ResultsService
	output      io.Writer
	ids         idgen.Generator
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	o := options{output: os.Stdout, ids: idgen.NewRandomGenerator("run")}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{cfg: cfg, logger: logger, output: o.output, ids: o.ids}

	repo := o.repository
	if repo == nil {
		switch cfg.StoreDriver {
		case config.StorePostgres:
			conn, err := openDB(ctx, cfg, logger)
			if err != nil {
				return nil, err
			}
			a.db = conn
			repo = postgres.NewStatsRepository(conn)
		default:
			repo = memory.NewStatsRepository()
		}
		if cfg.CacheEnabled {
			repo = cacherepo.NewStatsRepository(repo, cfg.CacheTTL)
		}
	}
	a.repo = repo

	seasonFetcher := o.seasonFetcher
	if seasonFetcher == nil {
		seasonFetcher = fbref.NewClient(fbref.ClientConfig{
			BaseURL:      cfg.FBrefBaseURL,
			UserAgent:    cfg.FBrefUserAgent,
			Timeout:      cfg.FBrefTimeout,
			MaxRetries:   cfg.FBrefMaxRetries,
			RetryBackoff: resilience.LinearBackoff(cfg.FBrefRetryBackoff),
			Logger:       logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.FBrefCircuitEnabled,
				FailureThreshold: cfg.FBrefCircuitFailures,
				OpenTimeout:      cfg.FBrefCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.FBrefCircuitHalfOpenMax,
			},
		})
	}

	catalog := etl.DefaultCatalog()
	merger := etl.NewMerger(cfg.StrictJoins, logger)
	builder := etl.NewSeasonBuilder(catalog, merger, cfg.Timezone, logger)
	a.seasons = usecase.NewSeasonService(seasonFetcher, builder, repo, usecase.SeasonServiceConfig{
		CompetitionID:   cfg.CompetitionID,
		CompetitionName: cfg.CompetitionName,
		MaxWorkers:      cfg.MaxWorkers,
	}, logger)

	var comparisonCache *cache.Store[stats.ComparisonRecord]
	if cfg.CacheEnabled {
		comparisonCache = cache.NewStore[stats.ComparisonRecord](cfg.CacheTTL)
	}
	a.comparisons = usecase.NewComparisonService(etl.NewAggregator(catalog, logger), repo, comparisonCache, usecase.ComparisonServiceConfig{
		Competition: cfg.CompetitionName,
	}, logger)

	resultsFetcher := o.resultsFetcher
	if resultsFetcher == nil && cfg.FootballDataEnabled {
		resultsFetcher = footballdata.NewClient(footballdata.ClientConfig{
			BaseURL:  cfg.FootballDataBaseURL,
			Division: cfg.FootballDataDivision,
			Timeout:  cfg.FootballDataTimeout,
			Logger:   logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.FBrefCircuitEnabled,
				FailureThreshold: cfg.FBrefCircuitFailures,
				OpenTimeout:      cfg.FBrefCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.FBrefCircuitHalfOpenMax,
			},
		})
	}
	if resultsFetcher != nil {
		cleaner := etl.NewFootballDataCleaner(catalog, cfg.Timezone)
		a.results = usecase.NewResultsService(resultsFetcher, cleaner, repo, cfg.CompetitionName, logger)
	}

	return a, nil
}

// Run fetches the configured seasons, builds and stores the comparisons of
// the configured categories, optionally fetches match results and prints the
// report.
func (a *App) Run(ctx context.Context) error {
	runID, err := a.ids.NewID()
	if err != nil {
		return fmt.Errorf("generate run id: %w", err)
	}
	logger := a.logger.With("run_id", runID, "competition", a.cfg.CompetitionName)
	logger.InfoContext(ctx, "pipeline started", "seasons", a.cfg.Seasons, "store", a.cfg.StoreDriver)

	seasons, err := a.seasons.FetchSeasons(ctx, usecase.FetchSeasonsInput{Seasons: a.cfg.Seasons})
	if err != nil {
		logger.ErrorContext(ctx, "fetch seasons failed", "error", err)
		return fmt.Errorf("fetch seasons: %w", err)
	}

	records, err := a.comparisons.BuildAll(ctx, seasons, a.cfg.Categories, a.cfg.FilterComparison)
	if err != nil {
		logger.ErrorContext(ctx, "build comparisons failed", "error", err)
		return fmt.Errorf("build comparisons: %w", err)
	}

	if a.results != nil {
		results, err := a.results.FetchResults(ctx, usecase.FetchResultsInput{Seasons: a.cfg.Seasons})
		if err != nil {
			logger.ErrorContext(ctx, "fetch results failed", "error", err)
			return fmt.Errorf("fetch results: %w", err)
		}
		logger.InfoContext(ctx, "results stored", "seasons", len(results))
	}

	if a.cfg.ReportEnabled {
		if err := a.report(ctx, records); err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "pipeline finished", "comparisons", len(records))
	return nil
}

func (a *App) report(ctx context.Context, records []stats.ComparisonRecord) error {
	report.RenderSummary(a.output, report.Summarize(records))

	latest := slices.Max(a.cfg.Seasons)
	for _, record := range records {
		if record.Perspective != stats.PerspectiveTeam {
			continue
		}
		ranked, err := a.comparisons.Ranking(ctx, record, latest)
		if err != nil {
			return fmt.Errorf("rank %s: %w", record.Category, err)
		}
		report.RenderTable(a.output, ranked, report.Options{
			Title:   fmt.Sprintf("%s ranking %s", record.Category, latest),
			MaxRows: reportMaxRows,
		})
	}
	return nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close postgres: %w", err)
	}
	return nil
}
