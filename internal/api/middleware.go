package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/winslowhq/cordial/internal/models"
)

const (
	sessionCookieName    = "app-session"
	oauthStateCookieName = "app-oauth-state"
	contextUserKey       = "current_user"
)

// currentUser reads the identity memoized for this request by
// resolveCurrentUser. Repeated reads never cost another lookup.
func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
