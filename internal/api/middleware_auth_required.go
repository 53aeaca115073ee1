package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/winslowhq/cordial/internal/models"
)

// resolveCurrentUser validates the session cookie and memoizes the result
// in request locals, so every downstream consumer within the request sees
// the same identity without duplicate lookups.
func (handler *Handler) resolveCurrentUser(c *fiber.Ctx) (*models.User, error) {
	if user, ok := currentUser(c); ok {
		return user, nil
	}
	user, err := handler.authService.Validate(c.Cookies(sessionCookieName))
	if err != nil {
		return nil, err
	}
	if user != nil {
		c.Locals(contextUserKey, user)
	}
	return user, nil
}

// AuthRequired is the authoritative check: the token is resolved against
// the session table and the user attached to the request. API routes get
// 401 JSON, navigation falls back to the login page.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.resolveCurrentUser(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "authentication error")
	}
	if user == nil {
		if strings.HasPrefix(c.Path(), "/api/") {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}
