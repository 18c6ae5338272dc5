package repositories

import (
	"fmt"
	"hanout/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMInventoryRepository is a GORM implementation of InventoryRepository.
type GORMInventoryRepository struct {
	db *gorm.DB
}

// NewGORMInventoryRepository creates a new instance of GORMInventoryRepository.
func NewGORMInventoryRepository(db *gorm.DB) *GORMInventoryRepository {
	return &GORMInventoryRepository{
		db: db,
	}
}

// GetByVariantID retrieves the ledger row for a variant.
func (r *GORMInventoryRepository) GetByVariantID(variantID string) (*models.InventoryRecord, error) {
	var record models.InventoryRecord
	if err := r.db.First(&record, "product_variant_id = ?", variantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("inventory for variant %s: %w", variantID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get inventory for variant %s: %w", variantID, err)
	}
	return &record, nil
}

// Upsert creates or overwrites available quantity and threshold for a variant.
// Reserved quantity is deliberately left out of the update column list.
func (r *GORMInventoryRepository) Upsert(record *models.InventoryRecord) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_variant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"available_quantity", "low_stock_threshold", "updated_at"}),
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert inventory for variant %s: %w", record.ProductVariantID, err)
	}
	return nil
}

// Reserve atomically moves quantity from available to reserved. The quantity
// guard lives in the WHERE clause so concurrent reservations against the
// same variant can never drive the available quantity negative.
func (r *GORMInventoryRepository) Reserve(variantID string, quantity int) error {
	res := r.db.Model(&models.InventoryRecord{}).
		Where("product_variant_id = ? AND available_quantity >= ?", variantID, quantity).
		Updates(map[string]interface{}{
			"available_quantity": gorm.Expr("available_quantity - ?", quantity),
			"reserved_quantity":  gorm.Expr("reserved_quantity + ?", quantity),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to reserve %d of variant %s: %w", quantity, variantID, res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the row is missing or the guard rejected the decrement.
		if _, err := r.GetByVariantID(variantID); err != nil {
			return err
		}
		return fmt.Errorf("variant %s: %w", variantID, ErrInsufficientStock)
	}
	return nil
}

// Release atomically moves quantity from reserved back to available.
func (r *GORMInventoryRepository) Release(variantID string, quantity int) error {
	res := r.db.Model(&models.InventoryRecord{}).
		Where("product_variant_id = ? AND reserved_quantity >= ?", variantID, quantity).
		Updates(map[string]interface{}{
			"available_quantity": gorm.Expr("available_quantity + ?", quantity),
			"reserved_quantity":  gorm.Expr("reserved_quantity - ?", quantity),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to release %d of variant %s: %w", quantity, variantID, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByVariantID(variantID); err != nil {
			return err
		}
		return fmt.Errorf("release of %d exceeds reservation for variant %s: %w", quantity, variantID, ErrInvariantViolation)
	}
	return nil
}

// Commit atomically removes quantity from reserved; the stock has shipped.
func (r *GORMInventoryRepository) Commit(variantID string, quantity int) error {
	res := r.db.Model(&models.InventoryRecord{}).
		Where("product_variant_id = ? AND reserved_quantity >= ?", variantID, quantity).
		Update("reserved_quantity", gorm.Expr("reserved_quantity - ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to commit %d of variant %s: %w", quantity, variantID, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByVariantID(variantID); err != nil {
			return err
		}
		return fmt.Errorf("commit of %d exceeds reservation for variant %s: %w", quantity, variantID, ErrInvariantViolation)
	}
	return nil
}

// GetLowStock lists ledger rows at or below their threshold.
func (r *GORMInventoryRepository) GetLowStock() ([]models.InventoryRecord, error) {
	var records []models.InventoryRecord
	if err := r.db.Where("available_quantity <= low_stock_threshold").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list low stock records: %w", err)
	}
	return records, nil
}
