package models

import "gorm.io/gorm"

// DeliveryZone is a geographic billing region (city/district). Its fee is
// copied into the order at creation time, so later fee changes never alter
// already-placed orders.
type DeliveryZone struct {
	ID                string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	City              string  `json:"city" gorm:"type:varchar(100);index" validate:"required,max=100"`
	NameAr            string  `json:"name_ar" gorm:"type:varchar(100)" validate:"required,max=100"`
	NameFr            string  `json:"name_fr" gorm:"type:varchar(100)" validate:"required,max=100"`
	NameEn            string  `json:"name_en" gorm:"type:varchar(100)" validate:"required,max=100"`
	DeliveryFee       float64 `json:"delivery_fee" validate:"gte=0"`
	EstimatedDelivery string  `json:"estimated_delivery_time" gorm:"type:varchar(50)"`
	// Orders whose subtotal reaches this amount ship free. Zero disables it.
	FreeDeliveryAbove float64 `json:"free_delivery_above" validate:"gte=0"`
	IsActive          bool    `json:"is_active" gorm:"default:true"`
	gorm.Model                // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
