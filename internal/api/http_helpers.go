package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/winslowhq/cordial/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError maps the domain error taxonomy onto status codes.
// Anything outside the taxonomy is an internal failure and surfaces as a
// generic 500 — never the underlying detail.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrEmailTaken):
		return apiError(c, fiber.StatusConflict, "email already registered")
	case errors.Is(err, services.ErrForbidden):
		return apiError(c, fiber.StatusForbidden, "forbidden")
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrTokenExpired):
		return apiError(c, fiber.StatusBadRequest, "reset token is invalid or expired")
	case errors.Is(err, services.ErrInvitationExpired):
		return apiError(c, fiber.StatusBadRequest, "invitation has expired")
	case errors.Is(err, services.ErrValidation):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	default:
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(value), nil
}
