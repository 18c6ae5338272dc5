package repositories_test

import (
	"testing"

	"hanout/internal/models"
	"hanout/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func TestOrderRepository_UpdateStatusVersionGuard(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	order := &models.Order{UserID: "user-1", Status: models.StatusPending}
	assert.NoError(t, repo.Create(order))

	// First actor wins the race.
	err := repo.UpdateStatus(order.ID, 0, models.StatusConfirmed, "")
	assert.NoError(t, err)

	// Second actor holding the stale version loses.
	err = repo.UpdateStatus(order.ID, 0, models.StatusCancelled, "")
	assert.ErrorIs(t, err, repositories.ErrVersionConflict)

	current, _ := repo.GetByID(order.ID)
	assert.Equal(t, models.StatusConfirmed, current.Status)
	assert.Equal(t, 1, current.Version)
}

func TestOrderRepository_UpdateStatusPayment(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	order := &models.Order{UserID: "user-1", Status: models.StatusDelivered, PaymentStatus: models.PaymentPending}
	assert.NoError(t, repo.Create(order))

	err := repo.UpdateStatus(order.ID, 0, models.StatusCODCollected, models.PaymentPaid)
	assert.NoError(t, err)
	current, _ := repo.GetByID(order.ID)
	assert.Equal(t, models.PaymentPaid, current.PaymentStatus)

	// Empty payment status leaves payment untouched.
	err = repo.UpdateStatus(order.ID, 1, models.StatusCompleted, "")
	assert.NoError(t, err)
	current, _ = repo.GetByID(order.ID)
	assert.Equal(t, models.PaymentPaid, current.PaymentStatus)
}

func TestOrderRepository_NotFound(t *testing.T) {
	repo := repositories.NewMockOrderRepository()

	_, err := repo.GetByID("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	err = repo.UpdateStatus("missing", 0, models.StatusConfirmed, "")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
