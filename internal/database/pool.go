// Package database implements the Postgres-backed storage layer: the
// subscriber/device/subscription tables matched against incoming events,
// and the message queue consumed by the sender.
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wavesplatform/push-notifications/internal/config"
)

// NewPool opens a connection pool against the given Postgres configuration.
func NewPool(ctx context.Context, cfg config.Postgres) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// Schema is the DDL applied by ApplySchema. It mirrors the six tables the
// subscription, device and message repositories operate on.
const Schema = `
CREATE TABLE IF NOT EXISTS subscribers (
	address TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS devices (
	uid SERIAL PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	fcm_uid TEXT NOT NULL,
	subscriber_address TEXT NOT NULL REFERENCES subscribers(address) ON DELETE CASCADE,
	language TEXT NOT NULL,
	utc_offset_seconds INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS devices_subscriber_address_idx ON devices(subscriber_address);
CREATE UNIQUE INDEX IF NOT EXISTS devices_subscriber_fcm_uid_idx ON devices(subscriber_address, fcm_uid);

CREATE TABLE IF NOT EXISTS subscriptions (
	uid SERIAL PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	subscriber_address TEXT NOT NULL REFERENCES subscribers(address) ON DELETE CASCADE,
	topic TEXT NOT NULL DEFAULT '',
	topic_type INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS subscriptions_subscriber_address_idx ON subscriptions(subscriber_address);

CREATE TABLE IF NOT EXISTS topics_order_execution (
	subscription_uid INTEGER PRIMARY KEY REFERENCES subscriptions(uid) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS topics_price_threshold (
	subscription_uid INTEGER PRIMARY KEY REFERENCES subscriptions(uid) ON DELETE CASCADE,
	amount_asset_id TEXT NOT NULL,
	price_asset_id TEXT NOT NULL,
	price_threshold DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS topics_price_threshold_pair_idx ON topics_price_threshold(amount_asset_id, price_asset_id);

CREATE TABLE IF NOT EXISTS messages (
	uid SERIAL PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	scheduled_for TIMESTAMPTZ NOT NULL DEFAULT now(),
	send_attempts_count SMALLINT NOT NULL DEFAULT 0,
	send_error TEXT,
	device_uid INTEGER NOT NULL REFERENCES devices(uid) ON DELETE CASCADE,
	notification_title TEXT NOT NULL,
	notification_body TEXT NOT NULL,
	data JSONB,
	collapse_key TEXT
);
CREATE INDEX IF NOT EXISTS messages_scheduled_for_idx ON messages(scheduled_for);
`

// ApplySchema creates the schema's tables and indexes if they don't exist.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, Schema)
	if err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
