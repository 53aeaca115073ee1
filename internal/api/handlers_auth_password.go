package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/winslowhq/cordial/internal/services"
)

const (
	recoveryAttemptsLimit  = 8
	recoveryAttemptsWindow = 15 * time.Minute
)

// forgotPasswordResponse is the single body this endpoint ever returns
// with 200, so the response cannot reveal whether the account exists.
var forgotPasswordResponse = fiber.Map{
	"success": true,
	"message": "If an account exists for that address, a reset link has been sent.",
}

func (handler *Handler) ForgotPassword(c *fiber.Ctx) error {
	now := time.Now()
	limiterKey := requestLimiterKey(c)
	if handler.recoveryLimiter.tooManyRecent(limiterKey, now, recoveryAttemptsLimit, recoveryAttemptsWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many recovery attempts")
	}
	handler.recoveryLimiter.addFailure(limiterKey, now, recoveryAttemptsWindow)

	input := forgotPasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := services.ValidateEmail(input.Email); err != nil {
		return respondValidationError(c, fieldErrors{"email": err.Error()})
	}

	if err := handler.resetService.Request(input.Email); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(forgotPasswordResponse)
}

func (handler *Handler) ResetPassword(c *fiber.Ctx) error {
	input := resetPasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if fields := validateResetPasswordInput(input); fields != nil {
		return respondValidationError(c, fields)
	}

	if err := handler.resetService.Reset(input.Token, input.Password); err != nil {
		// An unknown token and an expired one both come back as 400; only
		// the message differs, and neither confirms the token ever existed.
		if errors.Is(err, services.ErrNotFound) {
			return apiError(c, fiber.StatusBadRequest, "reset token is invalid or expired")
		}
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
