package repositories

import (
	"fmt"
	"sync"
	"time"

	"hanout/internal/models"
)

// MockInventoryRepository is an in-memory implementation of
// InventoryRepository. The mutex gives it the same atomicity as the
// conditional UPDATE in the GORM implementation: the guard check and the
// quantity move happen under one lock.
type MockInventoryRepository struct {
	records map[string]models.InventoryRecord
	mu      sync.RWMutex
}

// NewMockInventoryRepository creates a new instance of MockInventoryRepository.
func NewMockInventoryRepository() *MockInventoryRepository {
	return &MockInventoryRepository{
		records: make(map[string]models.InventoryRecord),
	}
}

// GetByVariantID returns the ledger row for a variant.
func (r *MockInventoryRepository) GetByVariantID(variantID string) (*models.InventoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[variantID]
	if !ok {
		return nil, fmt.Errorf("inventory for variant %s: %w", variantID, ErrNotFound)
	}
	return &record, nil
}

// Upsert creates or overwrites available quantity and threshold.
func (r *MockInventoryRepository) Upsert(record *models.InventoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.records[record.ProductVariantID]
	if ok {
		existing.AvailableQuantity = record.AvailableQuantity
		existing.LowStockThreshold = record.LowStockThreshold
		existing.UpdatedAt = time.Now()
		r.records[record.ProductVariantID] = existing
		return nil
	}
	record.UpdatedAt = time.Now()
	r.records[record.ProductVariantID] = *record
	return nil
}

// Reserve moves quantity from available to reserved if the guard holds.
func (r *MockInventoryRepository) Reserve(variantID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[variantID]
	if !ok {
		return fmt.Errorf("inventory for variant %s: %w", variantID, ErrNotFound)
	}
	if record.AvailableQuantity < quantity {
		return fmt.Errorf("variant %s: %w", variantID, ErrInsufficientStock)
	}
	record.AvailableQuantity -= quantity
	record.ReservedQuantity += quantity
	record.UpdatedAt = time.Now()
	r.records[variantID] = record
	return nil
}

// Release moves quantity from reserved back to available.
func (r *MockInventoryRepository) Release(variantID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[variantID]
	if !ok {
		return fmt.Errorf("inventory for variant %s: %w", variantID, ErrNotFound)
	}
	if record.ReservedQuantity < quantity {
		return fmt.Errorf("release of %d exceeds reservation for variant %s: %w", quantity, variantID, ErrInvariantViolation)
	}
	record.ReservedQuantity -= quantity
	record.AvailableQuantity += quantity
	record.UpdatedAt = time.Now()
	r.records[variantID] = record
	return nil
}

// Commit removes quantity permanently from reserved.
func (r *MockInventoryRepository) Commit(variantID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[variantID]
	if !ok {
		return fmt.Errorf("inventory for variant %s: %w", variantID, ErrNotFound)
	}
	if record.ReservedQuantity < quantity {
		return fmt.Errorf("commit of %d exceeds reservation for variant %s: %w", quantity, variantID, ErrInvariantViolation)
	}
	record.ReservedQuantity -= quantity
	record.UpdatedAt = time.Now()
	r.records[variantID] = record
	return nil
}

// GetLowStock lists rows at or below their threshold.
func (r *MockInventoryRepository) GetLowStock() ([]models.InventoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var low []models.InventoryRecord
	for _, record := range r.records {
		if record.IsLowStock() {
			low = append(low, record)
		}
	}
	return low, nil
}

// snapshot copies the full ledger state; used by the mock unit of work to
// restore it when a transaction function fails.
func (r *MockInventoryRepository) snapshot() map[string]models.InventoryRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := make(map[string]models.InventoryRecord, len(r.records))
	for k, v := range r.records {
		copied[k] = v
	}
	return copied
}

// restore replaces the ledger state with a previously taken snapshot.
func (r *MockInventoryRepository) restore(state map[string]models.InventoryRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = state
}
