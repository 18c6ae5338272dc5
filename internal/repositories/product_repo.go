package repositories

import (
	"hanout/internal/models"
)

// ProductRepository defines the interface for catalog data access:
// categories, products and their priced variants.
type ProductRepository interface {
	GetAllCategories() ([]models.Category, error)
	CreateCategory(category *models.Category) error

	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error

	GetVariantByID(id string) (*models.ProductVariant, error)
	CreateVariant(variant *models.ProductVariant) error
	UpdateVariant(variant *models.ProductVariant) error
}
