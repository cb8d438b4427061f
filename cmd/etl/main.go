package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/football-etl/internal/app"
	"github.com/riskibarqy/football-etl/internal/config"
	"github.com/riskibarqy/football-etl/internal/observability"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

func main() {
	exitCode := 0
	defer func() {
		os.Exit(exitCode)
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		exitCode = 2
		return
	}

	logger := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
		Output:  os.Stderr,
	})
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	shutdownTracing := observability.InitTracing(cfg, logger)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("shutdown tracing", "error", err)
		}
	}()

	stopProfiling, err := observability.InitProfiling(cfg, logger)
	if err != nil {
		logger.Error("start profiling", "error", err)
		exitCode = 1
		return
	}
	defer func() {
		if err := stopProfiling(); err != nil {
			logger.Warn("stop profiling", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("pipeline failed", "error", err)
		exitCode = 1
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger) error {
	pipeline, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			logger.Warn("close app", "error", err)
		}
	}()
	return pipeline.Run(ctx)
}
