package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wavesplatform/push-notifications/internal/apperr"
	"github.com/wavesplatform/push-notifications/internal/model"
)

// Queue is the message delivery queue (crates/database/src/message.rs,
// crates/push-notifications-sender/src/main.rs's postgres module).
type Queue struct{}

// Enqueue inserts a prepared message for later delivery.
func (Queue) Enqueue(ctx context.Context, tx pgx.Tx, message model.PreparedMessage) error {
	deviceUID, err := strconv.Atoi(message.Device.DeviceUID)
	if err != nil {
		return apperr.NewFatal("enqueue message", fmt.Errorf("device uid %q is not numeric: %w", message.Device.DeviceUID, err))
	}

	var data []byte
	if message.Data != nil {
		data, err = json.Marshal(message.Data)
		if err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx,
		`INSERT INTO messages (device_uid, notification_title, notification_body, data, collapse_key)
		 VALUES ($1, $2, $3, $4, $5)`,
		deviceUID, message.Message.NotificationTitle, message.Message.NotificationBody, data, message.CollapseKey,
	)
	if err != nil {
		return wrapQueryErr("enqueue message", err)
	}
	if tag.RowsAffected() != 1 {
		return apperr.NewFatal("enqueue message", fmt.Errorf("expected to insert 1 row, inserted %d", tag.RowsAffected()))
	}
	return nil
}

// QueuedMessage is a row dequeued for delivery, joined with its device's
// gateway token.
type QueuedMessage struct {
	UID               int
	CreatedAt         time.Time
	ScheduledFor      time.Time
	SendError         *string
	SendAttemptsCount int16
	NotificationTitle string
	NotificationBody  string
	Data              []byte
	CollapseKey       *string
	GatewayUID        string
}

// Dequeue returns the earliest-scheduled message still within
// maxSendAttempts and due for (re)delivery, or (zero, false, nil) if the
// queue has nothing ready.
func (Queue) Dequeue(ctx context.Context, q Querier, maxSendAttempts int16) (QueuedMessage, bool, error) {
	var m QueuedMessage
	err := q.QueryRow(ctx,
		`SELECT m.uid, m.created_at, m.scheduled_for, m.send_error, m.send_attempts_count,
		        m.notification_title, m.notification_body, m.data, m.collapse_key, d.fcm_uid
		 FROM messages m
		 JOIN devices d ON m.device_uid = d.uid
		 WHERE m.send_attempts_count < $1 AND m.scheduled_for < now()
		 ORDER BY m.scheduled_for
		 LIMIT 1`,
		maxSendAttempts,
	).Scan(&m.UID, &m.CreatedAt, &m.ScheduledFor, &m.SendError, &m.SendAttemptsCount,
		&m.NotificationTitle, &m.NotificationBody, &m.Data, &m.CollapseKey, &m.GatewayUID)
	return optional(m, err)
}

// Ack deletes a successfully delivered message.
func (Queue) Ack(ctx context.Context, q Querier, messageUID int) error {
	_, err := q.Exec(ctx, `DELETE FROM messages WHERE uid = $1`, messageUID)
	return wrapQueryErr("ack message", err)
}

// Nack records a failed delivery attempt and reschedules the message.
func (Queue) Nack(ctx context.Context, q Querier, messageUID int, newSendAttemptsCount int16, sendError string, newScheduledFor time.Time) error {
	_, err := q.Exec(ctx,
		`UPDATE messages SET scheduled_for = $1, send_attempts_count = $2, send_error = $3 WHERE uid = $4`,
		newScheduledFor, newSendAttemptsCount, sendError, messageUID,
	)
	return wrapQueryErr("nack message", err)
}
