package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/session", handler.Session)
	auth.Get("/user", handler.UserInfo)
	auth.Post("/forgot-password", handler.ForgotPassword)
	auth.Post("/reset-password", handler.ResetPassword)
	auth.Get("/oauth/google", handler.OAuthGoogleStart)
	auth.Get("/oauth/google/callback", handler.OAuthGoogleCallback)

	workspaces := api.Group("/workspaces", handler.AuthRequired)
	workspaces.Get("", handler.ListWorkspaces)
	workspaces.Post("", handler.CreateWorkspace)
	workspaces.Get("/:id", handler.GetWorkspace)
	workspaces.Patch("/:id", handler.UpdateWorkspace)
	workspaces.Delete("/:id", handler.DeleteWorkspace)

	workspaces.Get("/:id/members", handler.ListMembers)
	workspaces.Patch("/:id/members/:memberID", handler.UpdateMemberRole)
	workspaces.Delete("/:id/members/:memberID", handler.RemoveMember)

	workspaces.Get("/:id/invitations", handler.ListInvitations)
	workspaces.Post("/:id/invitations", handler.CreateInvitation)
	workspaces.Post("/:id/invitations/:invitationID/resend", handler.ResendInvitation)
	workspaces.Delete("/:id/invitations/:invitationID", handler.CancelInvitation)

	workspaces.Get("/:id/contacts", handler.ListContacts)
	workspaces.Post("/:id/contacts", handler.CreateContact)
	workspaces.Post("/:id/contacts/import", handler.ImportContacts)
	workspaces.Get("/:id/contacts/export.csv", handler.ExportContactsCSV)
	workspaces.Get("/:id/contacts/export.json", handler.ExportContactsJSON)
	workspaces.Get("/:id/contacts/:contactID", handler.GetContact)
	workspaces.Patch("/:id/contacts/:contactID", handler.UpdateContact)
	workspaces.Delete("/:id/contacts/:contactID", handler.DeleteContact)

	invitations := api.Group("/invitations", handler.AuthRequired)
	invitations.Post("/:token/accept", handler.AcceptInvitation)
}
