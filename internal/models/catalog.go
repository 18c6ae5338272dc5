package models

import "gorm.io/gorm"

// Category groups products (groceries, vape, ...). Display names are kept
// per locale: Arabic, French and English are the three supported locales.
type Category struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	NameAr     string `json:"name_ar" gorm:"type:varchar(100)" validate:"required,max=100"`
	NameFr     string `json:"name_fr" gorm:"type:varchar(100)" validate:"required,max=100"`
	NameEn     string `json:"name_en" gorm:"type:varchar(100)" validate:"required,max=100"`
	IsActive   bool   `json:"is_active" gorm:"default:true"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Product represents a sellable article. Vape products carry the
// age-restriction flag; enforcement at delivery is the courier's duty.
type Product struct {
	ID              string           `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CategoryID      string           `json:"category_id" gorm:"type:varchar(36);index" validate:"required,uuid"`
	NameAr          string           `json:"name_ar" gorm:"type:varchar(200)" validate:"required,max=200"`
	NameFr          string           `json:"name_fr" gorm:"type:varchar(200)" validate:"required,max=200"`
	NameEn          string           `json:"name_en" gorm:"type:varchar(200)" validate:"required,max=200"`
	Description     string           `json:"description" validate:"omitempty,max=500"`
	IsAgeRestricted bool             `json:"is_age_restricted"`
	IsActive        bool             `json:"is_active" gorm:"default:true"`
	Variants        []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
	gorm.Model                       // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// ProductVariant is the unit actually priced and stocked (e.g. 500g pack,
// 30ml bottle). Price is in MAD. Immutable apart from price edits by
// catalog management.
type ProductVariant struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID  string  `json:"product_id" gorm:"type:varchar(36);index" validate:"required,uuid"`
	SKU        string  `json:"sku" gorm:"uniqueIndex;type:varchar(64)" validate:"required,max=64"`
	NameAr     string  `json:"name_ar" gorm:"type:varchar(200)" validate:"required,max=200"`
	NameFr     string  `json:"name_fr" gorm:"type:varchar(200)" validate:"required,max=200"`
	NameEn     string  `json:"name_en" gorm:"type:varchar(200)" validate:"required,max=200"`
	Price      float64 `json:"price" validate:"required,gt=0"`
	IsDefault  bool    `json:"is_default"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
