package repositories

import (
	"fmt"
	"sync"

	"hanout/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	categories map[string]models.Category
	products   map[string]models.Product
	variants   map[string]models.ProductVariant
	mu         sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		categories: make(map[string]models.Category),
		products:   make(map[string]models.Product),
		variants:   make(map[string]models.ProductVariant),
	}
}

// GetAllCategories returns all categories.
func (r *MockProductRepository) GetAllCategories() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		list = append(list, c)
	}
	return list, nil
}

// CreateCategory adds a new category.
func (r *MockProductRepository) CreateCategory(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	r.categories[category.ID] = *category
	return nil
}

// GetAll returns all products with their variants attached.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		p.Variants = r.variantsOf(p.ID)
		list = append(list, p)
	}
	return list, nil
}

// GetByID returns a product by its ID with variants attached.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	product.Variants = r.variantsOf(id)
	return &product, nil
}

// variantsOf collects the variants of one product. Caller must hold the lock.
func (r *MockProductRepository) variantsOf(productID string) []models.ProductVariant {
	var vs []models.ProductVariant
	for _, v := range r.variants {
		if v.ProductID == productID {
			vs = append(vs, v)
		}
	}
	return vs
}

// Create adds a new product and any supplied variants.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	for i := range product.Variants {
		if product.Variants[i].ID == "" {
			product.Variants[i].ID = uuid.New().String()
		}
		product.Variants[i].ProductID = product.ID
		r.variants[product.Variants[i].ID] = product.Variants[i]
	}
	stored := *product
	stored.Variants = nil
	r.products[product.ID] = stored
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
	}
	stored := *product
	stored.Variants = nil
	r.products[product.ID] = stored
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// GetVariantByID returns a variant by its ID.
func (r *MockProductRepository) GetVariantByID(id string) (*models.ProductVariant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	variant, ok := r.variants[id]
	if !ok {
		return nil, fmt.Errorf("variant %s: %w", id, ErrNotFound)
	}
	return &variant, nil
}

// CreateVariant adds a new variant.
func (r *MockProductRepository) CreateVariant(variant *models.ProductVariant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if variant.ID == "" {
		variant.ID = uuid.New().String()
	}
	r.variants[variant.ID] = *variant
	return nil
}

// UpdateVariant modifies an existing variant.
func (r *MockProductRepository) UpdateVariant(variant *models.ProductVariant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.variants[variant.ID]
	if !ok {
		return fmt.Errorf("variant %s: %w", variant.ID, ErrNotFound)
	}
	r.variants[variant.ID] = *variant
	return nil
}
