package api

import (
	"github.com/winslowhq/cordial/internal/db"
	"github.com/winslowhq/cordial/internal/mail"
	"github.com/winslowhq/cordial/internal/services"
	"gorm.io/gorm"
)

// GoogleOAuthConfig carries the OAuth client credentials. Empty values
// disable the OAuth routes.
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
}

// Config is everything main hands to the handler besides the database.
type Config struct {
	CookieSecure bool
	AppURL       string
	Mailer       mail.Enqueuer
	Google       GoogleOAuthConfig
}

type Handler struct {
	db           *gorm.DB
	cookieSecure bool
	appURL       string
	google       GoogleOAuthConfig

	repositories      *db.Repositories
	authService       *services.AuthService
	resetService      *services.PasswordResetService
	workspaceService  *services.WorkspaceService
	invitationService *services.InvitationService
	contactService    *services.ContactService

	loginLimiter    *attemptLimiter
	recoveryLimiter *attemptLimiter
}
