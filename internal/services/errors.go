package services

import "errors"

// Flow-level failures of the order lifecycle.
var (
	// ErrInvalidTransition signals a status change not in the allowed
	// adjacency, or a COD confirmation on a non-COD order.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrOrderFinalized signals a mutation attempt on a completed or
	// cancelled order.
	ErrOrderFinalized = errors.New("order is finalized")

	// ErrUnauthorized signals that the acting user's role does not permit
	// the operation, or that the order belongs to someone else.
	ErrUnauthorized = errors.New("operation not permitted for this user")
)
