package models

import "time"

// InventoryRecord is the stock ledger row for one product variant.
// AvailableQuantity is what catalog browsing reports; ReservedQuantity is
// stock committed to pending/unconfirmed orders. The sum of the two only
// ever decreases through an explicit commit tied to a delivered order.
type InventoryRecord struct {
	ProductVariantID  string    `json:"product_variant_id" gorm:"primaryKey;type:varchar(36)"`
	AvailableQuantity int       `json:"available_quantity" gorm:"not null;default:0" validate:"gte=0"`
	ReservedQuantity  int       `json:"reserved_quantity" gorm:"not null;default:0" validate:"gte=0"`
	LowStockThreshold int       `json:"low_stock_threshold" gorm:"not null;default:0" validate:"gte=0"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// IsLowStock reports whether sellable stock has fallen to or below the
// restock threshold.
func (r *InventoryRecord) IsLowStock() bool {
	return r.AvailableQuantity <= r.LowStockThreshold
}
