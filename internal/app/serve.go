package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/textlens/internal/cli"
	"horse.fit/textlens/internal/config"
	"horse.fit/textlens/internal/db"
	"horse.fit/textlens/internal/httpapi"
	"horse.fit/textlens/internal/translation"
)

const historyConnectTimeout = 10 * time.Second

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	opts := httpapi.Options{}
	fs.StringVar(&opts.Host, "host", "0.0.0.0", "Host interface to bind")
	fs.IntVar(&opts.Port, "port", 8090, "HTTP port")
	fs.DurationVar(&opts.ReadTimeout, "read-timeout", 10*time.Second, "HTTP read timeout")
	fs.DurationVar(&opts.WriteTimeout, "write-timeout", 5*time.Minute, "HTTP write timeout")
	fs.DurationVar(&opts.ShutdownTimeout, "shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if opts.Port <= 0 || opts.Port > 65535 {
		fmt.Fprintln(os.Stderr, "--port must be between 1 and 65535")
		return 2
	}

	cfg, logger, err := loadRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	deps, closeDeps, err := buildServerDependencies(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("serve failed to initialize")
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		return 1
	}
	defer closeDeps()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpapi.NewServer(deps, logger, opts).Start(ctx); err != nil {
		logger.Error().Err(err).Str("host", opts.Host).Int("port", opts.Port).Msg("server failed")
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		return 1
	}
	return 0
}

// buildServerDependencies wires the analysis service, the translation
// orchestrator and, when DATABASE_URL is set, the history pool. The returned
// func releases the pool.
func buildServerDependencies(cfg *config.Config, logger zerolog.Logger) (httpapi.Dependencies, func(), error) {
	noop := func() {}

	analysisService, err := newAnalysisService(cfg, logger)
	if err != nil {
		return httpapi.Dependencies{}, noop, fmt.Errorf("readability engine: %w", err)
	}
	orchestrator, err := translation.NewOrchestratorFromConfig(cfg, logger)
	if err != nil {
		return httpapi.Dependencies{}, noop, fmt.Errorf("translation: %w", err)
	}

	deps := httpapi.Dependencies{
		Analysis:   analysisService,
		Translator: orchestrator,
	}
	closeDeps := noop
	if cfg.HasDatabase() {
		ctx, cancel := context.WithTimeout(context.Background(), historyConnectTimeout)
		defer cancel()

		pool, err := db.NewPool(ctx, cfg, logger)
		if err != nil {
			return httpapi.Dependencies{}, noop, fmt.Errorf("history database: %w", err)
		}
		deps.History = pool
		closeDeps = func() {
			if err := pool.Close(); err != nil {
				logger.Warn().Err(err).Msg("close history database failed")
			}
		}
	}

	logger.Info().
		Str("provider", cfg.Provider()).
		Int("pairs", len(orchestrator.Registry().Pairs())).
		Bool("sentiment", cfg.SentimentEnabled).
		Bool("history", deps.History != nil).
		Msg("textlens services ready")
	return deps, closeDeps, nil
}
