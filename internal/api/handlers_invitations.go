package api

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/winslowhq/cordial/internal/models"
)

// invitationLink is what the inviter shares; the same link is also
// emailed to the invitee when mail is configured.
func (handler *Handler) invitationLink(invitation models.WorkspaceInvitation) string {
	return fmt.Sprintf("%s/invite?token=%s", handler.appURL, url.QueryEscape(invitation.Token))
}

func (handler *Handler) ListInvitations(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}

	invitations, err := handler.invitationService.ListPending(user.ID, workspaceID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"invitations": invitations})
}

func (handler *Handler) CreateInvitation(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}

	input := invitationCreateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Role == "" {
		input.Role = models.RoleMember
	}

	invitation, err := handler.invitationService.Invite(user.ID, workspaceID, input.Email, input.Role)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"invitation": invitation,
		"link":       handler.invitationLink(invitation),
	})
}

func (handler *Handler) ResendInvitation(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}
	invitationID, err := parseIDParam(c, "invitationID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid invitation id")
	}

	invitation, err := handler.invitationService.Resend(user.ID, workspaceID, invitationID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"invitation": invitation,
		"link":       handler.invitationLink(invitation),
	})
}

func (handler *Handler) CancelInvitation(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}
	invitationID, err := parseIDParam(c, "invitationID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid invitation id")
	}

	if err := handler.invitationService.Cancel(user.ID, workspaceID, invitationID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// AcceptInvitation redeems an invite token for the signed-in user.
func (handler *Handler) AcceptInvitation(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	token := c.Params("token")
	if token == "" {
		return apiError(c, fiber.StatusBadRequest, "invalid invitation token")
	}

	member, err := handler.invitationService.Accept(token, user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"member": member})
}
