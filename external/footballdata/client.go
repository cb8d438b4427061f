package footballdata

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"github.com/riskibarqy/football-etl/internal/domain/table"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
	"github.com/riskibarqy/football-etl/internal/platform/resilience"
	"github.com/riskibarqy/football-etl/internal/usecase"
)

const (
	defaultBaseURL  = "https://www.football-data.co.uk"
	defaultDivision = "E0"
	utf8BOM         = "\ufeff"
)

type ClientConfig struct {
	BaseURL        string
	Division       string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   func(attempt int) time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client downloads season results files of one division.
type Client struct {
	http     *resty.Client
	guard    *resilience.Guard
	division string
	logger   *logging.Logger
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
	division := strings.TrimSpace(cfg.Division)
	if division == "" {
		division = defaultDivision
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	backoff := cfg.RetryBackoff
	if backoff == nil {
		backoff = resilience.LinearBackoff(time.Second)
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("accept", "text/csv")
	client.SetTimeout(timeout)

	breaker := cfg.CircuitBreaker
	if breaker.OnStateChange == nil {
		breaker.OnStateChange = func(from, to resilience.CircuitState) {
			logger.Warn("football-data circuit breaker state changed", "from", from, "to", to)
		}
	}

	return &Client{
		http: client,
		guard: resilience.NewGuard("football-data", breaker, resilience.RetryPolicy{
			MaxRetries: max(cfg.MaxRetries, 0),
			Backoff:    backoff,
		}),
		division: division,
		logger:   logger,
	}
}

// FetchResults returns the raw results table of a season label such as
// "2022_2023".
func (c *Client) FetchResults(ctx context.Context, season string) (*table.Table, error) {
	if !usecase.ValidSeasonLabel(season) {
		return nil, fmt.Errorf("%w: invalid season label %q", usecase.ErrInvalidInput, season)
	}
	path := fmt.Sprintf("/mmz4281/%s%s/%s.csv", season[2:4], season[7:9], c.division)

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
		case code == http.StatusTooManyRequests || code >= http.StatusInternalServerError:
			return fmt.Errorf("%w: football-data status=%d", resilience.ErrTransient, code)
		default:
			return crerr.Newf("football-data status=%d path=%s", code, path)
		}
	})
	if err != nil {
		switch {
		case errors.Is(err, resilience.ErrCircuitOpen):
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.guard.State())
			return nil, fmt.Errorf("%w: results provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		case errors.Is(err, resilience.ErrTransient):
			c.logger.WarnContext(ctx, "football-data request failed", "path", path, "error", err)
			return nil, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
		default:
			return nil, err
		}
	}

	t, err := ParseCSV(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c.logger.DebugContext(ctx, "football-data results fetched", "season", season, "rows", t.NumRows())
	return t, nil
}

// ParseCSV reads a results file into a raw table. Blank trailing rows are
// skipped and a leading byte order mark is removed.
func ParseCSV(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return table.Empty(), nil
		}
		return nil, crerr.Wrap(err, "read header")
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, crerr.Wrap(err, "read row")
		}
		if blankRecord(rec) {
			continue
		}
		records = append(records, rec)
	}

	return table.FromRecords(header, records)
}

func blankRecord(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
