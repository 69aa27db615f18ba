// Package bootstrap wires a binary's logger and runs its long-lived
// components to completion or shutdown signal.
package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/wavesplatform/push-notifications/internal/core"
)

// App holds the dependencies shared by every runner started under it.
type App struct {
	Logger core.ILogger
}

// NewApp builds an App with a logger at the given level. Each binary loads
// its own config type before constructing its runners; App itself stays
// config-agnostic.
func NewApp(logLevel string) *App {
	return &App{Logger: InitLogger(logLevel)}
}

// Runner is a component that can be run and stopped gracefully.
type Runner interface {
	Run(ctx context.Context) error
}

// Run starts every runner under an errgroup and blocks until they all
// finish, the context is canceled, or SIGINT/SIGTERM arrives.
func (a *App) Run(runners ...Runner) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	a.Logger.Info("starting application")

	for _, runner := range runners {
		r := runner
		g.Go(func() error {
			return r.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		a.Logger.Error("application stopped with error", "error", err)
		return err
	}

	a.Logger.Info("application shut down gracefully")
	return nil
}
