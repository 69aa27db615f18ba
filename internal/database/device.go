package database

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/wavesplatform/push-notifications/internal/model"
)

// DeviceRepo manages the devices table: push endpoints registered against a
// subscriber address (crates/database/src/device.rs).
type DeviceRepo struct{}

// Subscribers returns every device registered for address, used to fan out
// a matched notification to all of the address's devices.
func (DeviceRepo) Subscribers(ctx context.Context, q Querier, address model.Address) ([]model.Device, error) {
	rows, err := q.Query(ctx,
		`SELECT uid, fcm_uid, language, utc_offset_seconds
		 FROM devices WHERE subscriber_address = $1 ORDER BY uid`,
		address.AsBase58String(),
	)
	if err != nil {
		return nil, wrapQueryErr("list devices", err)
	}
	defer rows.Close()

	var devices []model.Device
	for rows.Next() {
		var uid int
		var fcmUID, lang string
		var utcOffset int
		if err := rows.Scan(&uid, &fcmUID, &lang, &utcOffset); err != nil {
			return nil, wrapQueryErr("scan device", err)
		}
		devices = append(devices, model.Device{
			DeviceUID:  strconv.Itoa(uid),
			Address:    address,
			GatewayUID: fcmUID,
			Locale:     model.Locale{Lang: lang, UTCOffsetSeconds: utcOffset},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("list devices", err)
	}
	return devices, nil
}

// Register inserts a subscriber (if missing) and a device row under it.
func (DeviceRepo) Register(ctx context.Context, tx pgx.Tx, address model.Address, gatewayUID, lang string, utcOffsetSeconds int) error {
	addr := address.AsBase58String()
	if err := ensureSubscriber(ctx, tx, addr); err != nil {
		return err
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO devices (fcm_uid, subscriber_address, language, utc_offset_seconds)
		 VALUES ($1, $2, $3, $4)`,
		gatewayUID, addr, lang, utcOffsetSeconds,
	)
	return wrapQueryErr("register device", err)
}

// Unregister deletes the device row for (address, gatewayUID). If it was the
// address's last device, the subscriber row is deleted too (cascading its
// subscriptions), mirroring the original's cleanup of orphaned subscribers.
func (DeviceRepo) Unregister(ctx context.Context, tx pgx.Tx, address model.Address, gatewayUID string) error {
	addr := address.AsBase58String()
	if _, err := tx.Exec(ctx,
		`DELETE FROM devices WHERE subscriber_address = $1 AND fcm_uid = $2`,
		addr, gatewayUID,
	); err != nil {
		return wrapQueryErr("unregister device", err)
	}

	var remaining string
	err := tx.QueryRow(ctx,
		`SELECT fcm_uid FROM devices WHERE subscriber_address = $1 LIMIT 1`, addr,
	).Scan(&remaining)
	_, hasOther, err := optional(remaining, err)
	if err != nil {
		return err
	}
	if !hasOther {
		if _, err := tx.Exec(ctx, `DELETE FROM subscribers WHERE address = $1`, addr); err != nil {
			return wrapQueryErr("unregister device: drop empty subscriber", err)
		}
	}
	return nil
}

// Exists reports whether (address, gatewayUID) already has a device row.
func (DeviceRepo) Exists(ctx context.Context, q Querier, address model.Address, gatewayUID string) (bool, error) {
	var fcmUID string
	err := q.QueryRow(ctx,
		`SELECT fcm_uid FROM devices WHERE subscriber_address = $1 AND fcm_uid = $2`,
		address.AsBase58String(), gatewayUID,
	).Scan(&fcmUID)
	_, found, err := optional(fcmUID, err)
	return found, err
}

// DeviceUpdate carries the optional fields Update may change; a nil field is
// left untouched.
type DeviceUpdate struct {
	Language         *string
	UTCOffsetSeconds *int
	NewGatewayUID    *string
}

// Update changes a device's language, UTC offset and/or gateway token in
// place.
func (DeviceRepo) Update(ctx context.Context, tx pgx.Tx, address model.Address, gatewayUID string, upd DeviceUpdate) error {
	_, err := tx.Exec(ctx,
		`UPDATE devices SET
			language = COALESCE($1, language),
			utc_offset_seconds = COALESCE($2, utc_offset_seconds),
			fcm_uid = COALESCE($3, fcm_uid),
			updated_at = now()
		 WHERE subscriber_address = $4 AND fcm_uid = $5`,
		upd.Language, upd.UTCOffsetSeconds, upd.NewGatewayUID,
		address.AsBase58String(), gatewayUID,
	)
	return wrapQueryErr("update device", err)
}
