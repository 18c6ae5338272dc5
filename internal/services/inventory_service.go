package services

import (
	"hanout/internal/models"
	"hanout/internal/repositories"
)

// InventoryService handles stock administration. Reservation, release and
// commit stay inside the order flow; this service covers what back-office
// staff do directly.
type InventoryService struct {
	repo repositories.InventoryRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(repo repositories.InventoryRepository) *InventoryService {
	return &InventoryService{
		repo: repo,
	}
}

// GetStock retrieves the ledger row for a variant.
func (s *InventoryService) GetStock(variantID string) (*models.InventoryRecord, error) {
	return s.repo.GetByVariantID(variantID)
}

// SetStock creates or overwrites available quantity and threshold for a
// variant. Admin and manager only. Reserved quantity is never touched here.
func (s *InventoryService) SetStock(actor models.Actor, record *models.InventoryRecord) error {
	if !actor.HasRole(models.RoleAdmin, models.RoleManager) {
		return ErrUnauthorized
	}
	return s.repo.Upsert(record)
}

// GetLowStock lists variants at or below their restock threshold. Staff only.
func (s *InventoryService) GetLowStock(actor models.Actor) ([]models.InventoryRecord, error) {
	if !actor.Role.Staff() {
		return nil, ErrUnauthorized
	}
	return s.repo.GetLowStock()
}
