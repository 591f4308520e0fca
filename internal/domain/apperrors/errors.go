// Package apperrors defines the sentinel errors shared across the
// service. Callers match them with errors.Is after the usual %w wrapping.
package apperrors

import "errors"

var (
	// ErrUnauthenticated means the call carried no verified caller identity.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrValidation means a booking request was malformed: unknown route
	// code, unknown aircraft type, or a zero-length leg.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the check-in target does not exist for this
	// caller. A flight owned by someone else reports the same error.
	ErrNotFound = errors.New("not found")

	// ErrIDCollision means a generated flight id already exists in the
	// collection. Retryable with a fresh id.
	ErrIDCollision = errors.New("id collision")

	// ErrCorruptStore means a collection's durable bytes could not be
	// decoded. Not retryable without operator intervention.
	ErrCorruptStore = errors.New("corrupt store")

	// ErrStoreUnavailable means the durable medium could not be read or
	// written. Retryable after backoff.
	ErrStoreUnavailable = errors.New("store unavailable")
)
