package fbref

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"github.com/riskibarqy/football-etl/internal/domain/stats"
	"github.com/riskibarqy/football-etl/internal/domain/table"
	"github.com/riskibarqy/football-etl/internal/etl"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
	"github.com/riskibarqy/football-etl/internal/platform/resilience"
	"github.com/riskibarqy/football-etl/internal/usecase"
)

const (
	defaultBaseURL   = "https://fbref.com"
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	maxBodyPreview   = 256
)

// statsPageLayout is the order of the tables on a competition season stats
// page.
var statsPageLayout = []stats.SourceTable{
	stats.SourceLeagueTable,
	stats.SourceLeagueTableSplit,
	stats.SourceStandardStats,
	stats.SourceStandardStats.For(stats.PerspectiveOpponent),
	stats.SourceGoalkeeping,
	stats.SourceGoalkeeping.For(stats.PerspectiveOpponent),
	stats.SourceAdvGoalkeeping,
	stats.SourceAdvGoalkeeping.For(stats.PerspectiveOpponent),
	stats.SourceShooting,
	stats.SourceShooting.For(stats.PerspectiveOpponent),
	stats.SourcePassing,
	stats.SourcePassing.For(stats.PerspectiveOpponent),
	stats.SourcePassTypes,
	stats.SourcePassTypes.For(stats.PerspectiveOpponent),
	stats.SourceGoalShotCreation,
	stats.SourceGoalShotCreation.For(stats.PerspectiveOpponent),
	stats.SourceDefensiveAction,
	stats.SourceDefensiveAction.For(stats.PerspectiveOpponent),
	stats.SourcePossession,
	stats.SourcePossession.For(stats.PerspectiveOpponent),
	stats.SourcePlayingTime,
	stats.SourcePlayingTime.For(stats.PerspectiveOpponent),
	stats.SourceMiscellaneous,
	stats.SourceMiscellaneous.For(stats.PerspectiveOpponent),
}

type ClientConfig struct {
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   func(attempt int) time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches competition season pages and returns their tables.
type Client struct {
	http   *resty.Client
	guard  *resilience.Guard
	logger *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("user-agent", userAgent)
	client.SetHeader("accept", "text/html")
	client.SetTimeout(timeout)

	backoff := cfg.RetryBackoff
	if backoff == nil {
		backoff = resilience.LinearBackoff(time.Second)
	}

	breaker := cfg.CircuitBreaker
	if breaker.OnStateChange == nil {
		breaker.OnStateChange = func(from, to resilience.CircuitState) {
			logger.Warn("fbref circuit breaker state changed", "from", from, "to", to)
		}
	}

	return &Client{
		http: client,
		guard: resilience.NewGuard("fbref", breaker, resilience.RetryPolicy{
			MaxRetries: max(cfg.MaxRetries, 0),
			Backoff:    backoff,
		}),
		logger: logger,
	}
}

// FetchSeason downloads the stats page and the scores page of one season.
func (c *Client) FetchSeason(ctx context.Context, req stats.SeasonRequest) (stats.RawSeason, error) {
	years, err := seasonYears(req.Season)
	if err != nil {
		return stats.RawSeason{}, err
	}
	name := strings.TrimSpace(req.CompetitionName)
	statsPath := fmt.Sprintf("/en/comps/%s/%s/%s-%s-Stats", req.CompetitionID, years, years, name)
	fixturesPath := fmt.Sprintf("/en/comps/%s/%s/schedule/%s-%s-Scores-and-Fixtures", req.CompetitionID, years, years, name)

	pageTables, err := c.fetchTables(ctx, statsPath)
	if err != nil {
		return stats.RawSeason{}, err
	}
	if len(pageTables) < len(statsPageLayout) {
		return stats.RawSeason{}, fmt.Errorf("%w: stats page for %s has %d tables, expected %d",
			etl.ErrSchema, req.Season, len(pageTables), len(statsPageLayout))
	}

	fixtureTables, err := c.fetchTables(ctx, fixturesPath)
	if err != nil {
		return stats.RawSeason{}, err
	}
	if len(fixtureTables) == 0 {
		return stats.RawSeason{}, fmt.Errorf("%w: scores page for %s has no tables", etl.ErrSchema, req.Season)
	}

	raw := stats.RawSeason{
		Season:   req.Season,
		Tables:   make(map[stats.SourceTable]*table.Table, len(statsPageLayout)),
		Fixtures: fixtureTables[0],
	}
	for i, source := range statsPageLayout {
		raw.Tables[source] = pageTables[i]
	}

	c.logger.DebugContext(ctx, "fbref season fetched",
		"season", req.Season,
		"tables", len(pageTables),
		"fixtures", fixtureTables[0].NumRows(),
	)
	return raw, nil
}

func (c *Client) fetchTables(ctx context.Context, path string) ([]*table.Table, error) {
	body, err := c.fetchPage(ctx, path)
	if err != nil {
		return nil, err
	}
	tables, err := ParseTables(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return tables, nil
}

func (c *Client) fetchPage(ctx context.Context, path string) ([]byte, error) {
	var body []byte
	err := c.guard.Do(ctx, func(ctx context.Context) error {
		resp, err := c.http.R().SetContext(ctx).Get(path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("%w: send request: %v", resilience.ErrTransient, err)
		}

		switch code := resp.StatusCode(); {
		case code >= 200 && code < 300:
			body = resp.Body()
			return nil
		case isRetryableStatus(code):
			return fmt.Errorf("%w: fbref status=%d body=%s", resilience.ErrTransient, code, abbreviateBody(resp.Body()))
		default:
			return crerr.Newf("fbref status=%d path=%s body=%s", code, path, abbreviateBody(resp.Body()))
		}
	})
	if err == nil {
		return body, nil
	}

	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		c.logger.WarnContext(ctx, "fbref circuit breaker rejected request", "state", c.guard.State(), "path", path)
		return nil, fmt.Errorf("%w: stats site is temporarily unavailable", usecase.ErrDependencyUnavailable)
	case errors.Is(err, resilience.ErrTransient):
		c.logger.WarnContext(ctx, "fbref request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
	default:
		return nil, err
	}
}

// seasonYears turns "2022_2023" into "2022-2023".
func seasonYears(season string) (string, error) {
	if !usecase.ValidSeasonLabel(season) {
		return "", fmt.Errorf("%w: invalid season label %q", usecase.ErrInvalidInput, season)
	}
	return strings.Replace(season, "_", "-", 1), nil
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) <= maxBodyPreview {
		return text
	}
	return text[:maxBodyPreview] + "..."
}
