package repositories

import (
	"fmt"
	"sync"

	"hanout/internal/models"

	"github.com/google/uuid"
)

// MockZoneRepository is an in-memory implementation of ZoneRepository.
type MockZoneRepository struct {
	zones map[string]models.DeliveryZone
	mu    sync.RWMutex
}

// NewMockZoneRepository creates a new instance of MockZoneRepository.
func NewMockZoneRepository() *MockZoneRepository {
	return &MockZoneRepository{
		zones: make(map[string]models.DeliveryZone),
	}
}

// GetAll returns delivery zones, optionally only active ones.
func (r *MockZoneRepository) GetAll(activeOnly bool) ([]models.DeliveryZone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.DeliveryZone
	for _, z := range r.zones {
		if activeOnly && !z.IsActive {
			continue
		}
		list = append(list, z)
	}
	return list, nil
}

// GetByID returns a delivery zone by its ID.
func (r *MockZoneRepository) GetByID(id string) (*models.DeliveryZone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	zone, ok := r.zones[id]
	if !ok {
		return nil, fmt.Errorf("delivery zone %s: %w", id, ErrNotFound)
	}
	return &zone, nil
}

// Create adds a new delivery zone.
func (r *MockZoneRepository) Create(zone *models.DeliveryZone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if zone.ID == "" {
		zone.ID = uuid.New().String()
	}
	r.zones[zone.ID] = *zone
	return nil
}

// Update modifies an existing delivery zone.
func (r *MockZoneRepository) Update(zone *models.DeliveryZone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.zones[zone.ID]
	if !ok {
		return fmt.Errorf("delivery zone %s: %w", zone.ID, ErrNotFound)
	}
	r.zones[zone.ID] = *zone
	return nil
}
