package repositories

import (
	"hanout/internal/models"
)

// InventoryRepository is the stock ledger for product variants.
//
// Reserve, Release and Commit must be atomic per variant: a conditional
// update with a quantity guard, never a read-then-write, so concurrent
// callers serialize on the row itself.
type InventoryRepository interface {
	GetByVariantID(variantID string) (*models.InventoryRecord, error)
	// Upsert creates or overwrites available quantity and threshold for a
	// variant. It never touches the reserved quantity; that belongs to the
	// ledger operations below.
	Upsert(record *models.InventoryRecord) error
	// Reserve moves quantity from available to reserved. Fails with
	// ErrInsufficientStock when available < quantity.
	Reserve(variantID string, quantity int) error
	// Release moves quantity from reserved back to available (cancellation).
	// Fails with ErrInvariantViolation when reserved < quantity.
	Release(variantID string, quantity int) error
	// Commit removes quantity permanently from reserved (stock shipped).
	// Fails with ErrInvariantViolation when reserved < quantity.
	Commit(variantID string, quantity int) error
	// GetLowStock lists variants whose available quantity is at or below
	// their threshold.
	GetLowStock() ([]models.InventoryRecord, error)
}
