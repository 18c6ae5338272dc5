package repositories_test

import (
	"errors"
	"sync"
	"testing"

	"hanout/internal/models"
	"hanout/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func seedStock(t *testing.T, repo *repositories.MockInventoryRepository, variantID string, available, threshold int) {
	t.Helper()
	err := repo.Upsert(&models.InventoryRecord{
		ProductVariantID:  variantID,
		AvailableQuantity: available,
		LowStockThreshold: threshold,
	})
	assert.NoError(t, err)
}

func TestInventoryRepository_ReserveReleaseConservation(t *testing.T) {
	repo := repositories.NewMockInventoryRepository()
	seedStock(t, repo, "var-1", 10, 2)

	// available + reserved is invariant across reserve/release pairs.
	assert.NoError(t, repo.Reserve("var-1", 4))
	record, _ := repo.GetByVariantID("var-1")
	assert.Equal(t, 6, record.AvailableQuantity)
	assert.Equal(t, 4, record.ReservedQuantity)
	assert.Equal(t, 10, record.AvailableQuantity+record.ReservedQuantity)

	assert.NoError(t, repo.Release("var-1", 4))
	record, _ = repo.GetByVariantID("var-1")
	assert.Equal(t, 10, record.AvailableQuantity)
	assert.Equal(t, 0, record.ReservedQuantity)
}

func TestInventoryRepository_ReserveInsufficient(t *testing.T) {
	repo := repositories.NewMockInventoryRepository()
	seedStock(t, repo, "var-1", 3, 0)

	err := repo.Reserve("var-1", 4)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)

	// Failed reservation leaves the row untouched.
	record, _ := repo.GetByVariantID("var-1")
	assert.Equal(t, 3, record.AvailableQuantity)
	assert.Equal(t, 0, record.ReservedQuantity)
}

func TestInventoryRepository_ConcurrentReserveExhaustsExactly(t *testing.T) {
	repo := repositories.NewMockInventoryRepository()
	seedStock(t, repo, "var-1", 10, 0)

	const callers = 25
	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Reserve("var-1", 1)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, repositories.ErrInsufficientStock)
		}
	}

	// Exactly enough calls succeed to exhaust stock; never negative.
	assert.Equal(t, 10, succeeded)
	record, _ := repo.GetByVariantID("var-1")
	assert.Equal(t, 0, record.AvailableQuantity)
	assert.Equal(t, 10, record.ReservedQuantity)
}

func TestInventoryRepository_ReleaseGuard(t *testing.T) {
	repo := repositories.NewMockInventoryRepository()
	seedStock(t, repo, "var-1", 10, 0)
	assert.NoError(t, repo.Reserve("var-1", 2))

	// Releasing more than reserved is a defensive failure, not business.
	err := repo.Release("var-1", 3)
	assert.ErrorIs(t, err, repositories.ErrInvariantViolation)
	assert.False(t, errors.Is(err, repositories.ErrInsufficientStock))
}

func TestInventoryRepository_CommitRemovesPermanently(t *testing.T) {
	repo := repositories.NewMockInventoryRepository()
	seedStock(t, repo, "var-1", 10, 0)
	assert.NoError(t, repo.Reserve("var-1", 3))
	assert.NoError(t, repo.Commit("var-1", 3))

	record, _ := repo.GetByVariantID("var-1")
	assert.Equal(t, 7, record.AvailableQuantity) // not restored
	assert.Equal(t, 0, record.ReservedQuantity)

	err := repo.Commit("var-1", 1)
	assert.ErrorIs(t, err, repositories.ErrInvariantViolation)
}

func TestInventoryRepository_LowStock(t *testing.T) {
	repo := repositories.NewMockInventoryRepository()
	seedStock(t, repo, "var-ok", 10, 2)
	seedStock(t, repo, "var-low", 2, 2)

	low, err := repo.GetLowStock()
	assert.NoError(t, err)
	assert.Len(t, low, 1)
	assert.Equal(t, "var-low", low[0].ProductVariantID)

	record, _ := repo.GetByVariantID("var-ok")
	assert.False(t, record.IsLowStock())
}

func TestInventoryRepository_UnknownVariant(t *testing.T) {
	repo := repositories.NewMockInventoryRepository()

	_, err := repo.GetByVariantID("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Reserve("missing", 1), repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Release("missing", 1), repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Commit("missing", 1), repositories.ErrNotFound)
}
