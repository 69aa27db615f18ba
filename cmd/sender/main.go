// Command sender drains the message queue and delivers each message through
// the push gateway, retrying failures with exponential backoff
// (crates/push-notifications-sender/src/main.rs).
package main

import (
	"context"
	"os"
	"time"

	"github.com/wavesplatform/push-notifications/internal/bootstrap"
	"github.com/wavesplatform/push-notifications/internal/config"
	"github.com/wavesplatform/push-notifications/internal/database"
	"github.com/wavesplatform/push-notifications/internal/infrastructure/health"
	"github.com/wavesplatform/push-notifications/internal/push"
)

func main() {
	app := bootstrap.NewApp(getLogLevel())
	logger := app.Logger

	ctx := context.Background()

	cfg, err := config.LoadSender()
	if err != nil {
		logger.Fatal("load sender config", "error", err)
	}
	logger.Info("loaded configuration", "config", cfg.String())

	pool, err := database.NewPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal("open postgres pool", "error", err)
	}
	defer pool.Close()

	if err := database.ApplySchema(ctx, pool); err != nil {
		logger.Fatal("apply schema", "error", err)
	}

	gateway := push.NewGateway(string(cfg.FCMAPIKey), cfg.ClickAction, cfg.DryRun)
	engine := push.NewEngine(pool, gateway, push.Config{
		EmptyQueuePollPeriod:   time.Duration(cfg.EmptyQueuePollPeriodMillis) * time.Millisecond,
		ExponentialBackoffBase: time.Duration(cfg.ExponentialBackoffInitialMillis) * time.Millisecond,
		ExponentialBackoffMult: float64(cfg.ExponentialBackoffMultiplier),
		MaxAttempts:            int16(cfg.MaxAttempts),
	}, logger)

	monitor := health.NewHealthManager(logger)
	monitor.Register("postgres", func() error { return pool.Ping(ctx) })
	reporter := bootstrap.NewHealthReporter(monitor, 30*time.Second, logger)

	if err := app.Run(engine, reporter); err != nil {
		os.Exit(1)
	}
}

func getLogLevel() string {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		return v
	}
	return "INFO"
}
