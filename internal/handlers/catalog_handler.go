package handlers

import (
	"fmt"
	"log"

	"hanout/internal/models"
	"hanout/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for categories, products and variants.
type CatalogHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the read-only browsing routes.
func (h *CatalogHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleGetCategories)
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Get("/:id/availability", h.HandleGetAvailability)
}

// RegisterRoutes registers the catalog management routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/categories", h.HandleCreateCategory)
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Post("/:id/variants", h.HandleCreateVariant)
	productRoutes.Put("/:id/variants/:variantId", h.HandleUpdateVariant)
}

// HandleGetCategories retrieves all categories.
func (h *CatalogHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		log.Printf("Error getting categories: %v", err)
		return respondError(c, "Could not retrieve categories", err)
	}
	return c.JSON(categories)
}

// HandleCreateCategory creates a new category.
func (h *CatalogHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(category); err != nil {
		return h.validationResponse(c, err)
	}
	if err := h.service.CreateCategory(actorFromCtx(c), &category); err != nil {
		log.Printf("Error creating category: %v", err)
		return respondError(c, "Could not create category", err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleGetProducts retrieves all products.
func (h *CatalogHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *CatalogHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		log.Printf("Error getting product %s: %v", productID, err)
		return respondError(c, fmt.Sprintf("Could not retrieve product %s", productID), err)
	}
	return c.JSON(product)
}

// HandleGetAvailability reports sellable stock per variant.
func (h *CatalogHandler) HandleGetAvailability(c *fiber.Ctx) error {
	productID := c.Params("id")
	availability, err := h.service.GetAvailability(productID)
	if err != nil {
		log.Printf("Error getting availability of product %s: %v", productID, err)
		return respondError(c, fmt.Sprintf("Could not retrieve availability of product %s", productID), err)
	}
	return c.JSON(availability)
}

// HandleCreateProduct creates a new product.
func (h *CatalogHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(product); err != nil {
		return h.validationResponse(c, err)
	}
	if err := h.service.CreateProduct(actorFromCtx(c), &product); err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates an existing product.
func (h *CatalogHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = c.Params("id")
	if err := h.validate.Struct(product); err != nil {
		return h.validationResponse(c, err)
	}
	if err := h.service.UpdateProduct(actorFromCtx(c), &product); err != nil {
		log.Printf("Error updating product %s: %v", product.ID, err)
		return respondError(c, fmt.Sprintf("Could not update product %s", product.ID), err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *CatalogHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(actorFromCtx(c), productID); err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		return respondError(c, fmt.Sprintf("Could not delete product %s", productID), err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted successfully", productID),
	})
}

// HandleCreateVariant adds a priced variant to a product.
func (h *CatalogHandler) HandleCreateVariant(c *fiber.Ctx) error {
	var variant models.ProductVariant
	if err := c.BodyParser(&variant); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	variant.ProductID = c.Params("id")
	if err := h.validate.Struct(variant); err != nil {
		return h.validationResponse(c, err)
	}
	if err := h.service.CreateVariant(actorFromCtx(c), &variant); err != nil {
		log.Printf("Error creating variant for product %s: %v", variant.ProductID, err)
		return respondError(c, "Could not create variant", err)
	}
	return c.Status(fiber.StatusCreated).JSON(variant)
}

// HandleUpdateVariant updates a variant, e.g. a price edit.
func (h *CatalogHandler) HandleUpdateVariant(c *fiber.Ctx) error {
	var variant models.ProductVariant
	if err := c.BodyParser(&variant); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	variant.ProductID = c.Params("id")
	variant.ID = c.Params("variantId")
	if err := h.validate.Struct(variant); err != nil {
		return h.validationResponse(c, err)
	}
	if err := h.service.UpdateVariant(actorFromCtx(c), &variant); err != nil {
		log.Printf("Error updating variant %s: %v", variant.ID, err)
		return respondError(c, fmt.Sprintf("Could not update variant %s", variant.ID), err)
	}
	return c.JSON(variant)
}

// validationResponse renders validator errors as a field map.
func (h *CatalogHandler) validationResponse(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
