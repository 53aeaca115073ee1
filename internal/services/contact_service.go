package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/winslowhq/cordial/internal/db"
	"github.com/winslowhq/cordial/internal/models"
	"gorm.io/gorm"
)

type ContactService struct {
	contacts *db.ContactRepository
	roles    *WorkspaceService
}

func NewContactService(contacts *db.ContactRepository, roles *WorkspaceService) *ContactService {
	return &ContactService{contacts: contacts, roles: roles}
}

var contactReadRoles = []string{models.RoleOwner, models.RoleAdmin, models.RoleMember, models.RoleGuest}
var contactWriteRoles = []string{models.RoleOwner, models.RoleAdmin, models.RoleMember}

func (service *ContactService) List(callerID uint, workspaceID uint) ([]models.Contact, error) {
	if err := service.roles.RequireRole(callerID, workspaceID, contactReadRoles...); err != nil {
		return nil, err
	}
	contacts, err := service.contacts.ListForWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (service *ContactService) Get(callerID uint, workspaceID uint, contactID uint) (models.Contact, error) {
	if err := service.roles.RequireRole(callerID, workspaceID, contactReadRoles...); err != nil {
		return models.Contact{}, err
	}
	contact, err := service.contacts.FindByID(workspaceID, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Contact{}, ErrNotFound
		}
		return models.Contact{}, fmt.Errorf("load contact: %w", err)
	}
	return contact, nil
}

type ContactInput struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Company string `json:"company" form:"company"`
	Title   string `json:"title" form:"title"`
	Notes   string `json:"notes" form:"notes"`
}

func (input *ContactInput) validate() error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: contact name is required", ErrValidation)
	}
	return nil
}

func (service *ContactService) Create(callerID uint, workspaceID uint, input ContactInput) (models.Contact, error) {
	if err := service.roles.RequireRole(callerID, workspaceID, contactWriteRoles...); err != nil {
		return models.Contact{}, err
	}
	if err := input.validate(); err != nil {
		return models.Contact{}, err
	}

	contact := models.Contact{
		WorkspaceID: workspaceID,
		Name:        strings.TrimSpace(input.Name),
		Email:       NormalizeEmail(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Company:     strings.TrimSpace(input.Company),
		Title:       strings.TrimSpace(input.Title),
		Notes:       input.Notes,
		CreatedAt:   time.Now(),
	}
	if err := service.contacts.Create(&contact); err != nil {
		return models.Contact{}, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

func (service *ContactService) Update(callerID uint, workspaceID uint, contactID uint, input ContactInput) (models.Contact, error) {
	if err := service.roles.RequireRole(callerID, workspaceID, contactWriteRoles...); err != nil {
		return models.Contact{}, err
	}
	if err := input.validate(); err != nil {
		return models.Contact{}, err
	}

	contact, err := service.contacts.FindByID(workspaceID, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Contact{}, ErrNotFound
		}
		return models.Contact{}, fmt.Errorf("load contact: %w", err)
	}

	contact.Name = strings.TrimSpace(input.Name)
	contact.Email = NormalizeEmail(input.Email)
	contact.Phone = strings.TrimSpace(input.Phone)
	contact.Company = strings.TrimSpace(input.Company)
	contact.Title = strings.TrimSpace(input.Title)
	contact.Notes = input.Notes
	contact.UpdatedAt = time.Now()

	if err := service.contacts.Save(&contact); err != nil {
		return models.Contact{}, fmt.Errorf("save contact: %w", err)
	}
	return contact, nil
}

func (service *ContactService) Delete(callerID uint, workspaceID uint, contactID uint) error {
	if err := service.roles.RequireRole(callerID, workspaceID, contactWriteRoles...); err != nil {
		return err
	}
	if _, err := service.contacts.FindByID(workspaceID, contactID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load contact: %w", err)
	}
	if err := service.contacts.Delete(workspaceID, contactID); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
