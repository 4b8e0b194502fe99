package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sdko-org/ha-platform/internal/config"
	"github.com/sdko-org/ha-platform/internal/database"
	"github.com/sdko-org/ha-platform/internal/handlers"
	httpserver "github.com/sdko-org/ha-platform/internal/http"
	"github.com/sdko-org/ha-platform/internal/logging"
	"github.com/sdko-org/ha-platform/internal/retry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider := database.NewPostgresProvider(logger, cfg.Postgres())

	retrier := retry.New(logger, initPolicy(cfg))
	if err := database.NewInitializer(logger, provider, retrier).Run(ctx); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}

	h := handlers.NewHandler(logger, provider, database.NewVisitStore(provider))
	r := handlers.NewRouter(logger, h)

	return httpserver.Run(ctx, logger, httpserver.New(cfg.Addr(), r), cfg.ShutdownTimeout)
}

// initPolicy retries at a fixed interval unless a growth multiplier is set.
func initPolicy(cfg *config.Config) retry.Policy {
	policy := retry.Constant(cfg.InitRetryInterval)
	policy.MaxAttempts = cfg.InitMaxAttempts
	if cfg.InitRetryMultiplier > 1 {
		policy.Multiplier = cfg.InitRetryMultiplier
		policy.MaxInterval = cfg.InitRetryMaxDelay
	}
	return policy
}
