package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/winslowhq/cordial/internal/services"
)

const (
	loginAttemptsLimit  = 10
	loginAttemptsWindow = 15 * time.Minute
)

func (handler *Handler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(services.SessionTTL / time.Second),
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
	})
}

func (handler *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
	})
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if fields := validateRegisterInput(input); fields != nil {
		return respondValidationError(c, fields)
	}

	user, err := handler.authService.Register(input.Name, input.Email, input.Password)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user.Public()})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	now := time.Now()
	limiterKey := requestLimiterKey(c)
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginAttemptsLimit, loginAttemptsWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if fields := validateLoginInput(input); fields != nil {
		return respondValidationError(c, fields)
	}

	user, token, err := handler.authService.Login(input.Email, input.Password)
	if err != nil {
		handler.loginLimiter.addFailure(limiterKey, now, loginAttemptsWindow)
		return respondServiceError(c, err)
	}
	handler.loginLimiter.reset(limiterKey)

	handler.setSessionCookie(c, token)
	return c.JSON(fiber.Map{"user": user.Public()})
}

// Logout deletes the session row for the presented cookie. Safe to call
// without one.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(sessionCookieName); token != "" {
		if err := handler.authService.Logout(token); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "authentication error")
		}
	}
	handler.clearSessionCookie(c)
	return c.JSON(fiber.Map{"success": true})
}

// Session reports the current identity with 200 in both outcomes; clients
// poll it to decide what to render. Compare UserInfo, which treats a
// missing session as an error.
func (handler *Handler) Session(c *fiber.Ctx) error {
	user, err := handler.resolveCurrentUser(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "authentication error")
	}
	if user == nil {
		return c.JSON(fiber.Map{"user": nil})
	}
	return c.JSON(fiber.Map{"user": user.Public()})
}

// UserInfo returns the resolved identity or 401.
func (handler *Handler) UserInfo(c *fiber.Ctx) error {
	user, err := handler.resolveCurrentUser(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "authentication error")
	}
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{"user": user.Public()})
}
