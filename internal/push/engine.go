package push

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wavesplatform/push-notifications/internal/core"
	"github.com/wavesplatform/push-notifications/internal/database"
	"github.com/wavesplatform/push-notifications/pkg/retry"
)

// Config tunes the delivery loop's polling and retry spacing
// (crates/push-notifications-sender/src/main.rs's main loop).
type Config struct {
	EmptyQueuePollPeriod    time.Duration
	ExponentialBackoffBase  time.Duration
	ExponentialBackoffMult  float64
	MaxAttempts             int16
}

// Engine repeatedly dequeues messages and hands them to a Gateway, retrying
// failures with exponentially increasing delay and giving up permanently
// once a message's attempt count reaches MaxAttempts.
type Engine struct {
	pool    *pgxpool.Pool
	queue   database.Queue
	gateway *Gateway
	cfg     Config
	logger  core.ILogger
}

// NewEngine builds an Engine.
func NewEngine(pool *pgxpool.Pool, gateway *Gateway, cfg Config, logger core.ILogger) *Engine {
	return &Engine{pool: pool, gateway: gateway, cfg: cfg, logger: logger}
}

// Run polls the queue until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		sent, err := e.tick(ctx)
		if err != nil {
			return err
		}
		if !sent {
			select {
			case <-time.After(e.cfg.EmptyQueuePollPeriod):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// tick dequeues and attempts to deliver at most one message, returning
// whether there was a message to act on.
func (e *Engine) tick(ctx context.Context) (bool, error) {
	msg, ok, err := e.queue.Dequeue(ctx, e.pool, e.cfg.MaxAttempts)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	sendErr := e.gateway.Send(ctx, msg.GatewayUID, msg.NotificationTitle, msg.NotificationBody, msg.Data)
	if sendErr == nil {
		e.logger.Info("message delivered", "uid", msg.UID)
		if err := e.queue.Ack(ctx, e.pool, msg.UID); err != nil {
			return true, err
		}
		return true, nil
	}

	newAttempts := msg.SendAttemptsCount + 1
	backoff := retry.Exponential(e.cfg.ExponentialBackoffBase, e.cfg.ExponentialBackoffMult, int(msg.SendAttemptsCount))
	scheduledFor := time.Now().Add(backoff)
	e.logger.Warn("message delivery failed, rescheduling",
		"uid", msg.UID, "attempt", newAttempts, "backoff", backoff, "error", sendErr)

	if err := e.queue.Nack(ctx, e.pool, msg.UID, newAttempts, sendErr.Error(), scheduledFor); err != nil {
		return true, err
	}
	return true, nil
}
