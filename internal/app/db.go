package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/football-etl/db"
	"github.com/riskibarqy/football-etl/internal/config"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

const (
	dbPingTimeout        = 5 * time.Second
	maxTracedQueryLength = 512
	preparedBinaryParam  = "disable_prepared_binary_result"
)

var queryWhitespace = regexp.MustCompile(`\s+`)

// openDB opens the stats store with query tracing and, when enabled, applies
// the embedded migrations first.
func openDB(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sqlx.DB, error) {
	dsn := DBURL(cfg)

	if cfg.DBAutoMigrate {
		if err := migrateUp(dsn, logger); err != nil {
			return nil, err
		}
	}

	conn, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return conn, nil
}

func migrateUp(dsn string, logger *logging.Logger) error {
	m, err := db.NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warn("close migrator", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debug("no migration changes")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}
	logger.Info("migrations applied")
	return nil
}

// normalizeDBURL sets disable_prepared_binary_result=yes on URL style DSNs
// unless the caller already chose a value.
func normalizeDBURL(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	query := parsed.Query()
	if query.Has(preparedBinaryParam) {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// dbNameFromURL reads the database name from a URL or a key=value DSN.
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		return strings.Trim(parsed.Path, "/ ")
	}
	for _, field := range strings.Fields(raw) {
		if name, ok := strings.CutPrefix(field, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

func formatDBQueryForTrace(query string) string {
	query = queryWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(query) <= maxTracedQueryLength {
		return query
	}
	return query[:maxTracedQueryLength] + "..."
}

// DBURL returns the configured DSN with the driver flags applied.
func DBURL(cfg config.Config) string {
	return normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
}
