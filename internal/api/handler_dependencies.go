package api

import (
	"strings"

	"github.com/winslowhq/cordial/internal/db"
	"github.com/winslowhq/cordial/internal/mail"
	"github.com/winslowhq/cordial/internal/services"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, config Config) *Handler {
	mailer := config.Mailer
	if mailer == nil {
		mailer = mail.NoopEnqueuer{}
	}

	handler := &Handler{
		db:              database,
		cookieSecure:    config.CookieSecure,
		appURL:          strings.TrimRight(config.AppURL, "/"),
		google:          config.Google,
		loginLimiter:    newAttemptLimiter(),
		recoveryLimiter: newAttemptLimiter(),
	}
	return handler.withDependencies(database, mailer)
}

func (handler *Handler) withDependencies(database *gorm.DB, mailer mail.Enqueuer) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users, handler.repositories.Sessions)
	handler.resetService = services.NewPasswordResetService(
		handler.repositories.Users,
		handler.repositories.PasswordResets,
		handler.repositories.Sessions,
		mailer,
	)
	handler.workspaceService = services.NewWorkspaceService(handler.repositories.Workspaces)
	handler.invitationService = services.NewInvitationService(
		handler.repositories.Invitations,
		handler.repositories.Workspaces,
		handler.workspaceService,
		mailer,
	)
	handler.contactService = services.NewContactService(handler.repositories.Contacts, handler.workspaceService)
	return handler
}
