package services

import (
	"hanout/internal/models"
	"hanout/internal/repositories"
)

// ProductAvailability decorates a catalog variant with what the ledger
// reports as sellable.
type ProductAvailability struct {
	VariantID string `json:"variant_id"`
	Available int    `json:"available_quantity"`
	LowStock  bool   `json:"low_stock"`
}

// CatalogService handles the read-mostly catalog: categories, products and
// variants. Writes are restricted to admin and manager roles.
type CatalogService struct {
	repo          repositories.ProductRepository
	inventoryRepo repositories.InventoryRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository, inventoryRepo repositories.InventoryRepository) *CatalogService {
	return &CatalogService{
		repo:          repo,
		inventoryRepo: inventoryRepo,
	}
}

// GetAllCategories retrieves all categories.
func (s *CatalogService) GetAllCategories() ([]models.Category, error) {
	return s.repo.GetAllCategories()
}

// CreateCategory creates a new category.
func (s *CatalogService) CreateCategory(actor models.Actor, category *models.Category) error {
	if !actor.HasRole(models.RoleAdmin, models.RoleManager) {
		return ErrUnauthorized
	}
	return s.repo.CreateCategory(category)
}

// GetAllProducts retrieves all products.
func (s *CatalogService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetAvailability reports sellable stock per variant of a product. Browsing
// sees available quantity only; reserved stock is invisible to customers.
func (s *CatalogService) GetAvailability(productID string) ([]ProductAvailability, error) {
	product, err := s.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	availability := make([]ProductAvailability, 0, len(product.Variants))
	for _, v := range product.Variants {
		record, err := s.inventoryRepo.GetByVariantID(v.ID)
		if err != nil {
			// No ledger row yet means nothing stocked.
			availability = append(availability, ProductAvailability{VariantID: v.ID})
			continue
		}
		availability = append(availability, ProductAvailability{
			VariantID: v.ID,
			Available: record.AvailableQuantity,
			LowStock:  record.IsLowStock(),
		})
	}
	return availability, nil
}

// CreateProduct creates a new product.
func (s *CatalogService) CreateProduct(actor models.Actor, product *models.Product) error {
	if !actor.HasRole(models.RoleAdmin, models.RoleManager) {
		return ErrUnauthorized
	}
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *CatalogService) UpdateProduct(actor models.Actor, product *models.Product) error {
	if !actor.HasRole(models.RoleAdmin, models.RoleManager) {
		return ErrUnauthorized
	}
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *CatalogService) DeleteProduct(actor models.Actor, id string) error {
	if !actor.HasRole(models.RoleAdmin, models.RoleManager) {
		return ErrUnauthorized
	}
	return s.repo.Delete(id)
}

// CreateVariant adds a priced variant to a product.
func (s *CatalogService) CreateVariant(actor models.Actor, variant *models.ProductVariant) error {
	if !actor.HasRole(models.RoleAdmin, models.RoleManager) {
		return ErrUnauthorized
	}
	if _, err := s.repo.GetByID(variant.ProductID); err != nil {
		return err
	}
	return s.repo.CreateVariant(variant)
}

// UpdateVariant updates a variant, e.g. a price edit by catalog management.
func (s *CatalogService) UpdateVariant(actor models.Actor, variant *models.ProductVariant) error {
	if !actor.HasRole(models.RoleAdmin, models.RoleManager) {
		return ErrUnauthorized
	}
	return s.repo.UpdateVariant(variant)
}
