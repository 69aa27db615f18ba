package bootstrap

import (
	"context"
	"time"

	"github.com/wavesplatform/push-notifications/internal/core"
)

// HealthReporter periodically logs the registered health checks' status.
// There is no HTTP /healthz surface here (spec.md §1 keeps the metrics/health
// HTTP endpoint out of scope); this is the in-process equivalent an operator
// can still see in the logs.
type HealthReporter struct {
	monitor  core.IHealthMonitor
	interval time.Duration
	logger   core.ILogger
}

// NewHealthReporter builds a HealthReporter polling monitor every interval.
func NewHealthReporter(monitor core.IHealthMonitor, interval time.Duration, logger core.ILogger) *HealthReporter {
	return &HealthReporter{monitor: monitor, interval: interval, logger: logger}
}

// Run logs a warning for every unhealthy component on each tick, until ctx
// is cancelled.
func (r *HealthReporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if r.monitor.IsHealthy() {
				continue
			}
			for component, status := range r.monitor.GetStatus() {
				r.logger.Warn("component unhealthy", "component", component, "status", status)
			}
		}
	}
}
