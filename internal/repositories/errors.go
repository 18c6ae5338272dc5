package repositories

import "errors"

// Storage-level failures. Handlers map these to HTTP statuses with
// errors.Is, so they must stay comparable sentinels.
var (
	// ErrNotFound signals an absent order, variant, product, zone or user.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientStock signals that a reservation asked for more than
	// the available quantity. A business condition, not a fault.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvariantViolation signals a defensive check failure, e.g. a
	// release exceeding the reserved quantity. Never expected from normal
	// flows; must be logged, never swallowed.
	ErrInvariantViolation = errors.New("inventory invariant violation")

	// ErrVersionConflict signals a lost optimistic-concurrency race on an
	// order transition. Callers may retry with fresh state.
	ErrVersionConflict = errors.New("order modified concurrently")
)
