package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListMembers(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}

	members, err := handler.workspaceService.ListMembers(user.ID, workspaceID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"members": members})
}

func (handler *Handler) UpdateMemberRole(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}
	memberID, err := parseIDParam(c, "memberID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid member id")
	}

	input := memberRoleInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Role == "" {
		return respondValidationError(c, fieldErrors{"role": "role is required"})
	}

	member, err := handler.workspaceService.ChangeMemberRole(user.ID, workspaceID, memberID, input.Role)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"member": member})
}

func (handler *Handler) RemoveMember(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}
	memberID, err := parseIDParam(c, "memberID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid member id")
	}

	if err := handler.workspaceService.RemoveMember(user.ID, workspaceID, memberID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
