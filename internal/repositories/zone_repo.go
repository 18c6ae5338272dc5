package repositories

import (
	"hanout/internal/models"
)

// ZoneRepository defines the interface for delivery zone data access.
type ZoneRepository interface {
	GetAll(activeOnly bool) ([]models.DeliveryZone, error)
	GetByID(id string) (*models.DeliveryZone, error)
	Create(zone *models.DeliveryZone) error
	Update(zone *models.DeliveryZone) error
}
