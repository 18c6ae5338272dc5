package repositories

import (
	"hanout/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// never deleted; the cancelled status is the soft end of life.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	// UpdateStatus transitions an order guarded by the expected version.
	// Fails with ErrVersionConflict when another actor got there first.
	// paymentStatus may be empty to leave payment untouched.
	UpdateStatus(id string, expectedVersion int, status models.OrderStatus, paymentStatus models.PaymentStatus) error
}
