package observability

import (
	"context"

	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/riskibarqy/football-etl/internal/config"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

// InitTracing installs the global OpenTelemetry providers that export
// pipeline and query spans to Uptrace. The returned func flushes pending
// spans.
func InitTracing(cfg config.Config, logger *logging.Logger) func(context.Context) error {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.UptraceEnabled {
		logger.Debug("tracing disabled", "reason", "UPTRACE_ENABLED=false")
		return func(context.Context) error { return nil }
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	logger.Info("tracing enabled",
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
	)

	return uptrace.Shutdown
}
