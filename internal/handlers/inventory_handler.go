package handlers

import (
	"fmt"
	"log"

	"hanout/internal/models"
	"hanout/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// InventoryHandler handles HTTP requests for stock administration.
type InventoryHandler struct {
	service  *services.InventoryService
	validate *validator.Validate
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the inventory routes with the Fiber app.
func (h *InventoryHandler) RegisterRoutes(router fiber.Router) {
	inventoryRoutes := router.Group("/inventory")
	inventoryRoutes.Get("/low-stock", h.HandleGetLowStock)
	inventoryRoutes.Get("/:variantId", h.HandleGetStock)
	inventoryRoutes.Put("/:variantId", h.HandleSetStock)
}

// HandleGetStock retrieves the ledger row for a variant.
func (h *InventoryHandler) HandleGetStock(c *fiber.Ctx) error {
	variantID := c.Params("variantId")
	record, err := h.service.GetStock(variantID)
	if err != nil {
		log.Printf("Error getting stock for variant %s: %v", variantID, err)
		return respondError(c, fmt.Sprintf("Could not retrieve stock for variant %s", variantID), err)
	}
	return c.JSON(record)
}

// HandleSetStock creates or overwrites available quantity and threshold.
func (h *InventoryHandler) HandleSetStock(c *fiber.Ctx) error {
	var record models.InventoryRecord
	if err := c.BodyParser(&record); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	record.ProductVariantID = c.Params("variantId")
	if err := h.validate.Struct(record); err != nil {
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

	if err := h.service.SetStock(actorFromCtx(c), &record); err != nil {
		log.Printf("Error setting stock for variant %s: %v", record.ProductVariantID, err)
		return respondError(c, fmt.Sprintf("Could not set stock for variant %s", record.ProductVariantID), err)
	}
	return c.JSON(record)
}

// HandleGetLowStock lists variants at or below their restock threshold.
func (h *InventoryHandler) HandleGetLowStock(c *fiber.Ctx) error {
	records, err := h.service.GetLowStock(actorFromCtx(c))
	if err != nil {
		log.Printf("Error listing low stock: %v", err)
		return respondError(c, "Could not retrieve low stock report", err)
	}
	return c.JSON(records)
}
