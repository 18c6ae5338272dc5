package handlers

import (
	"fmt"
	"log"

	"hanout/internal/models"
	"hanout/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ZoneHandler handles HTTP requests for delivery zones.
type ZoneHandler struct {
	service  *services.ZoneService
	validate *validator.Validate
}

// NewZoneHandler creates a new ZoneHandler.
func NewZoneHandler(service *services.ZoneService) *ZoneHandler {
	return &ZoneHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the public zone listing.
func (h *ZoneHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/zones", h.HandleGetActiveZones)
}

// RegisterRoutes registers the zone management routes.
func (h *ZoneHandler) RegisterRoutes(router fiber.Router) {
	zoneRoutes := router.Group("/zones")
	zoneRoutes.Get("/all", h.HandleGetAllZones)
	zoneRoutes.Post("/", h.HandleCreateZone)
	zoneRoutes.Put("/:id", h.HandleUpdateZone)
}

// HandleGetActiveZones lists zones currently open for delivery.
func (h *ZoneHandler) HandleGetActiveZones(c *fiber.Ctx) error {
	zones, err := h.service.GetActiveZones()
	if err != nil {
		log.Printf("Error getting active zones: %v", err)
		return respondError(c, "Could not retrieve delivery zones", err)
	}
	return c.JSON(zones)
}

// HandleGetAllZones lists every zone, active or not.
func (h *ZoneHandler) HandleGetAllZones(c *fiber.Ctx) error {
	zones, err := h.service.GetAllZones(actorFromCtx(c))
	if err != nil {
		log.Printf("Error getting all zones: %v", err)
		return respondError(c, "Could not retrieve delivery zones", err)
	}
	return c.JSON(zones)
}

// HandleCreateZone creates a new delivery zone.
func (h *ZoneHandler) HandleCreateZone(c *fiber.Ctx) error {
	var zone models.DeliveryZone
	if err := c.BodyParser(&zone); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(zone); err != nil {
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
	if err := h.service.CreateZone(actorFromCtx(c), &zone); err != nil {
		log.Printf("Error creating zone: %v", err)
		return respondError(c, "Could not create delivery zone", err)
	}
	return c.Status(fiber.StatusCreated).JSON(zone)
}

// HandleUpdateZone updates an existing delivery zone.
func (h *ZoneHandler) HandleUpdateZone(c *fiber.Ctx) error {
	var zone models.DeliveryZone
	if err := c.BodyParser(&zone); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	zone.ID = c.Params("id")
	if err := h.service.UpdateZone(actorFromCtx(c), &zone); err != nil {
		log.Printf("Error updating zone %s: %v", zone.ID, err)
		return respondError(c, fmt.Sprintf("Could not update delivery zone %s", zone.ID), err)
	}
	return c.JSON(zone)
}
