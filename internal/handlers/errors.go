package handlers

import (
	"errors"

	"hanout/internal/models"
	"hanout/internal/repositories"
	"hanout/internal/services"

	"github.com/gofiber/fiber/v2"
)

// statusFromError maps domain failures to HTTP statuses. Invariant
// violations are deliberately surfaced as 500s; they mean a defensive
// check inside the ledger fired and must never be hidden.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, repositories.ErrInsufficientStock),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrOrderFinalized),
		errors.Is(err, repositories.ErrVersionConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the standard error payload.
func respondError(c *fiber.Ctx, message string, err error) error {
	return c.Status(statusFromError(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// actorFromCtx fetches the actor stored by the auth middleware.
func actorFromCtx(c *fiber.Ctx) models.Actor {
	if actor, ok := c.Locals("actor").(models.Actor); ok {
		return actor
	}
	return models.Actor{}
}
