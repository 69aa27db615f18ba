// Package apperr is the notification pipeline's own error taxonomy
// (spec.md §7), replacing ad-hoc sentinel errors with typed wrappers that
// callers can branch on via errors.As.
package apperr

import "fmt"

// Transient wraps an external failure (DB deadlock, HTTP timeout, gateway
// 5xx) that is expected to clear on retry. The processor fails the current
// event's transaction on a Transient error and relies on its source's
// at-least-once redelivery rather than retrying internally.
type Transient struct {
	Op  string
	Err error
}

func (e *Transient) Error() string { return fmt.Sprintf("%s: transient: %v", e.Op, e.Err) }
func (e *Transient) Unwrap() error { return e.Err }

// NewTransient wraps err as a Transient error attributed to op.
func NewTransient(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Transient{Op: op, Err: err}
}

// Validation reports malformed input at an API boundary (bad topic URL, bad
// address). It never reaches the core pipeline; callers at the boundary
// translate it to a 4xx.
type Validation struct {
	Field string
	Err   error
}

func (e *Validation) Error() string { return fmt.Sprintf("validation: %s: %v", e.Field, e.Err) }
func (e *Validation) Unwrap() error { return e.Err }

// NewValidation wraps err as a Validation error on the named field.
func NewValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &Validation{Field: field, Err: err}
}

// Fatal reports a schema or invariant violation: an unknown topic_type int,
// a malformed asset id already stored in the database, an impossible
// event/topic pairing. These indicate a bug or corrupted data, not a
// transient condition; the current transaction is aborted and the event is
// nacked.
type Fatal struct {
	Op  string
	Err error
}

func (e *Fatal) Error() string { return fmt.Sprintf("%s: fatal: %v", e.Op, e.Err) }
func (e *Fatal) Unwrap() error { return e.Err }

// NewFatal wraps err as a Fatal error attributed to op.
func NewFatal(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Fatal{Op: op, Err: err}
}

// LimitExceeded reports that an address has reached its subscription cap.
// It carries a distinct error code so API callers can render it specially.
type LimitExceeded struct {
	Address string
	Limit   int
}

const LimitExceededCode = "95 0901"

func (e *LimitExceeded) Error() string {
	return fmt.Sprintf("address %s exceeded subscription limit of %d", e.Address, e.Limit)
}

// NewLimitExceeded builds a LimitExceeded error for address and limit.
func NewLimitExceeded(address string, limit int) error {
	return &LimitExceeded{Address: address, Limit: limit}
}
