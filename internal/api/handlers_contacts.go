package api

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/winslowhq/cordial/internal/services"
)

func (handler *Handler) ListContacts(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}

	contacts, err := handler.contactService.List(user.ID, workspaceID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"contacts": contacts})
}

func (handler *Handler) GetContact(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}
	contactID, err := parseIDParam(c, "contactID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid contact id")
	}

	contact, err := handler.contactService.Get(user.ID, workspaceID, contactID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"contact": contact})
}

func (handler *Handler) CreateContact(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}

	input := services.ContactInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	contact, err := handler.contactService.Create(user.ID, workspaceID, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"contact": contact})
}

func (handler *Handler) UpdateContact(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}
	contactID, err := parseIDParam(c, "contactID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid contact id")
	}

	input := services.ContactInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	contact, err := handler.contactService.Update(user.ID, workspaceID, contactID, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"contact": contact})
}

func (handler *Handler) DeleteContact(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}
	contactID, err := parseIDParam(c, "contactID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid contact id")
	}

	if err := handler.contactService.Delete(user.ID, workspaceID, contactID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (handler *Handler) ExportContactsCSV(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}

	payload, err := handler.contactService.ExportCSV(user.ID, workspaceID)
	if err != nil {
		return respondServiceError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="contacts.csv"`)
	return c.Send(payload)
}

func (handler *Handler) ExportContactsJSON(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}

	contacts, err := handler.contactService.List(user.ID, workspaceID)
	if err != nil {
		return respondServiceError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="contacts.json"`)
	return c.JSON(fiber.Map{"contacts": contacts})
}

// ImportContacts accepts a CSV document as the request body.
func (handler *Handler) ImportContacts(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid workspace id")
	}

	body := c.Body()
	if len(body) == 0 {
		return apiError(c, fiber.StatusBadRequest, "empty import body")
	}

	imported, err := handler.contactService.ImportCSV(user.ID, workspaceID, bytes.NewReader(body))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"imported": imported})
}
