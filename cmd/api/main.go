// Command api is a placeholder entry point for the subscription/device CRUD
// surface. Serving that surface over HTTP is explicitly out of scope here;
// this binary only opens a live pool and applies the schema of the repository
// layer it would sit on (database.SubscriptionRepo, database.DeviceRepo), whose
// types it references without calling. It exposes no handlers and accepts no
// connections.
package main

import (
	"context"
	"os"
	"time"

	"github.com/wavesplatform/push-notifications/internal/bootstrap"
	"github.com/wavesplatform/push-notifications/internal/config"
	"github.com/wavesplatform/push-notifications/internal/database"
	"github.com/wavesplatform/push-notifications/internal/infrastructure/health"
)

func main() {
	app := bootstrap.NewApp(getLogLevel())
	logger := app.Logger

	ctx := context.Background()

	cfg, err := config.LoadAPI()
	if err != nil {
		logger.Fatal("load api config", "error", err)
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

	// The repository layer (database.SubscriptionRepo, database.DeviceRepo) is
	// exercised by cmd/processor's matching path; wiring an HTTP router on top
	// of it is out of scope.
	_ = database.SubscriptionRepo{}
	_ = database.DeviceRepo{}

	logger.Info("api repository layer ready; no HTTP surface is served by this binary")

	monitor := health.NewHealthManager(logger)
	monitor.Register("postgres", func() error { return pool.Ping(ctx) })
	reporter := bootstrap.NewHealthReporter(monitor, 30*time.Second, logger)

	if err := app.Run(reporter); err != nil {
		os.Exit(1)
	}
}

func getLogLevel() string {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		return v
	}
	return "INFO"
}
