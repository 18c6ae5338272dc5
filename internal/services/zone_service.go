package services

import (
	"hanout/internal/models"
	"hanout/internal/repositories"
)

// ZoneService handles delivery zone reference data. Zones are looked up
// once at order creation; edits here never alter placed orders.
type ZoneService struct {
	repo repositories.ZoneRepository
}

// NewZoneService creates a new ZoneService.
func NewZoneService(repo repositories.ZoneRepository) *ZoneService {
	return &ZoneService{
		repo: repo,
	}
}

// GetActiveZones lists the zones currently open for delivery.
func (s *ZoneService) GetActiveZones() ([]models.DeliveryZone, error) {
	return s.repo.GetAll(true)
}

// GetAllZones lists every zone, active or not. Staff only.
func (s *ZoneService) GetAllZones(actor models.Actor) ([]models.DeliveryZone, error) {
	if !actor.Role.Staff() {
		return nil, ErrUnauthorized
	}
	return s.repo.GetAll(false)
}

// CreateZone creates a new delivery zone. Admin only.
func (s *ZoneService) CreateZone(actor models.Actor, zone *models.DeliveryZone) error {
	if !actor.HasRole(models.RoleAdmin) {
		return ErrUnauthorized
	}
	return s.repo.Create(zone)
}

// UpdateZone updates an existing delivery zone. Admin only.
func (s *ZoneService) UpdateZone(actor models.Actor, zone *models.DeliveryZone) error {
	if !actor.HasRole(models.RoleAdmin) {
		return ErrUnauthorized
	}
	return s.repo.Update(zone)
}
