package repositories

import (
	"fmt"
	"hanout/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMZoneRepository is a GORM implementation of ZoneRepository.
type GORMZoneRepository struct {
	db *gorm.DB
}

// NewGORMZoneRepository creates a new instance of GORMZoneRepository.
func NewGORMZoneRepository(db *gorm.DB) *GORMZoneRepository {
	return &GORMZoneRepository{
		db: db,
	}
}

// GetAll retrieves delivery zones, optionally only active ones.
func (r *GORMZoneRepository) GetAll(activeOnly bool) ([]models.DeliveryZone, error) {
	var zones []models.DeliveryZone
	q := r.db
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&zones).Error; err != nil {
		return nil, fmt.Errorf("failed to get delivery zones: %w", err)
	}
	return zones, nil
}

// GetByID retrieves a single delivery zone.
func (r *GORMZoneRepository) GetByID(id string) (*models.DeliveryZone, error) {
	var zone models.DeliveryZone
	if err := r.db.First(&zone, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("delivery zone %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get delivery zone %s: %w", id, err)
	}
	return &zone, nil
}

// Create creates a new delivery zone.
func (r *GORMZoneRepository) Create(zone *models.DeliveryZone) error {
	if zone.ID == "" {
		zone.ID = uuid.New().String()
	}
	if err := r.db.Create(zone).Error; err != nil {
		return fmt.Errorf("failed to create delivery zone: %w", err)
	}
	return nil
}

// Update updates an existing delivery zone.
func (r *GORMZoneRepository) Update(zone *models.DeliveryZone) error {
	res := r.db.Save(zone)
	if res.Error != nil {
		return fmt.Errorf("failed to update delivery zone: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delivery zone %s: %w", zone.ID, ErrNotFound)
	}
	return nil
}
