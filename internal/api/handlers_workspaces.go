package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/winslowhq/cordial/internal/services"
)

// ListWorkspaces returns the caller's workspaces, creating the default one
// on a first visit.
func (handler *Handler) ListWorkspaces(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaces, err := handler.workspaceService.ListFor(*user)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"workspaces": workspaces})
}

func (handler *Handler) CreateWorkspace(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	input := workspaceCreateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Name == "" {
		return respondValidationError(c, fieldErrors{"name": "workspace name is required"})
	}

	workspace, err := handler.workspaceService.Create(user.ID, input.Name, input.Description, input.Logo)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"workspace": workspace})
}

func (handler *Handler) GetWorkspace(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}

	workspace, err := handler.workspaceService.Get(user.ID, workspaceID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"workspace": workspace})
}

func (handler *Handler) UpdateWorkspace(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}

	input := workspaceUpdateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	workspace, err := handler.workspaceService.Update(user.ID, workspaceID, services.WorkspaceUpdate{
		Name:        input.Name,
		Description: input.Description,
		Logo:        input.Logo,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"workspace": workspace})
}

func (handler *Handler) DeleteWorkspace(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}

	if err := handler.workspaceService.Delete(user.ID, workspaceID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
