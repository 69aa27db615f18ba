package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// ensureSubscriber inserts a subscribers row for address if one doesn't
// already exist (crates/database/src/subscription.rs and device.rs both
// insert-or-ignore a subscriber before inserting the child row).
func ensureSubscriber(ctx context.Context, tx pgx.Tx, address string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO subscribers (address) VALUES ($1) ON CONFLICT (address) DO NOTHING`,
		address,
	)
	return wrapQueryErr("ensure subscriber", err)
}
