package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/winslowhq/cordial/internal/services"
)

// fieldErrors collects per-field validation messages for the 400 response
// body.
type fieldErrors map[string]string

func respondValidationError(c *fiber.Ctx, fields fieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "validation failed",
		"fields": fields,
	})
}

func validateRegisterInput(input registerInput) fieldErrors {
	fields := fieldErrors{}
	if err := services.ValidateEmail(input.Email); err != nil {
		fields["email"] = err.Error()
	}
	if err := services.ValidatePassword(input.Password); err != nil {
		fields["password"] = err.Error()
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func validateLoginInput(input loginInput) fieldErrors {
	fields := fieldErrors{}
	if input.Email == "" {
		fields["email"] = "email is required"
	}
	if input.Password == "" {
		fields["password"] = "password is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func validateResetPasswordInput(input resetPasswordInput) fieldErrors {
	fields := fieldErrors{}
	if input.Token == "" {
		fields["token"] = "token is required"
	}
	if err := services.ValidatePassword(input.Password); err != nil {
		fields["password"] = err.Error()
	}
	if input.Password != input.ConfirmPassword {
		fields["confirmPassword"] = "passwords do not match"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
