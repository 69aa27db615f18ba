package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wavesplatform/push-notifications/internal/apperr"
)

// optional maps pgx.ErrNoRows to (zero, false, nil), matching the
// `optional()` helper in crates/database/src/device.rs: a missing row is not
// itself an error, only a row the caller must check for.
func optional[T any](v T, err error) (T, bool, error) {
	if err == nil {
		return v, true, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		var zero T
		return zero, false, nil
	}
	return v, false, apperr.NewTransient("database query", err)
}

func wrapQueryErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return apperr.NewTransient(op, err)
}

// errBadAsset is returned when a row holds an asset id that internal/waves
// can no longer decode: the database disagrees with the code that wrote it.
type errBadAsset struct {
	ID string
}

func (e errBadAsset) Error() string {
	return fmt.Sprintf("database row has malformed asset id %q", e.ID)
}

// errBadAddress mirrors errBadAsset for address columns.
type errBadAddress struct {
	Address string
}

func (e errBadAddress) Error() string {
	return fmt.Sprintf("database row has malformed address %q", e.Address)
}

// errBadTopicType is returned when subscriptions.topic_type holds a value
// outside {0, 1} (crates/database/src/subscription.rs topic_type_from_int).
type errBadTopicType struct {
	Value int
}

func (e errBadTopicType) Error() string {
	return fmt.Sprintf("database row has unknown topic_type %d", e.Value)
}

func badAsset(id string) error       { return apperr.NewFatal("decode asset id", errBadAsset{ID: id}) }
func badAddress(addr string) error   { return apperr.NewFatal("decode address", errBadAddress{Address: addr}) }
func badTopicType(v int) error       { return apperr.NewFatal("decode topic_type", errBadTopicType{Value: v}) }
