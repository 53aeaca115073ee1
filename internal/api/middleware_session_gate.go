package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/winslowhq/cordial/internal/services"
)

// publicOnlyPaths are navigation targets that make no sense for a signed-in
// user.
var publicOnlyPaths = map[string]struct{}{
	"/login":           {},
	"/register":        {},
	"/forgot-password": {},
	"/reset-password":  {},
}

var protectedPathPrefixes = []string{
	"/dashboard",
	"/contacts",
	"/settings",
	"/workspaces",
}

// SessionGate is the coarse pre-route check for page navigation. It only
// inspects the cookie's format — no database round-trip — so it can run on
// every request cheaply. It is a UX optimization, not an authorization
// boundary: every data-fetching route still validates the token against
// the session table.
func (handler *Handler) SessionGate(c *fiber.Ctx) error {
	path := c.Path()
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/static/") || path == "/healthz" {
		return c.Next()
	}

	hasSessionCookie := services.ValidSessionTokenFormat(c.Cookies(sessionCookieName))

	if _, publicOnly := publicOnlyPaths[path]; publicOnly {
		if hasSessionCookie {
			return c.Redirect("/dashboard", fiber.StatusSeeOther)
		}
		return c.Next()
	}

	if path == "/" {
		if hasSessionCookie {
			return c.Redirect("/dashboard", fiber.StatusSeeOther)
		}
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	for _, prefix := range protectedPathPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			if !hasSessionCookie {
				return c.Redirect("/login", fiber.StatusSeeOther)
			}
			break
		}
	}

	return c.Next()
}
