package db

import (
	"github.com/winslowhq/cordial/internal/models"
	"gorm.io/gorm"
)

type ContactRepository struct {
	database *gorm.DB
}

func NewContactRepository(database *gorm.DB) *ContactRepository {
	return &ContactRepository{database: database}
}

func (repo *ContactRepository) FindByID(workspaceID uint, contactID uint) (models.Contact, error) {
	var contact models.Contact
	if err := repo.database.
		Where("workspace_id = ? AND id = ?", workspaceID, contactID).
		First(&contact).Error; err != nil {
		return models.Contact{}, err
	}
	return contact, nil
}

func (repo *ContactRepository) ListForWorkspace(workspaceID uint) ([]models.Contact, error) {
	contacts := make([]models.Contact, 0)
	if err := repo.database.
		Where("workspace_id = ?", workspaceID).
		Order("name, id").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (repo *ContactRepository) Create(contact *models.Contact) error {
	return repo.database.Create(contact).Error
}

func (repo *ContactRepository) CreateBatch(contacts []models.Contact) error {
	if len(contacts) == 0 {
		return nil
	}
	return repo.database.Create(&contacts).Error
}

func (repo *ContactRepository) Save(contact *models.Contact) error {
	return repo.database.Save(contact).Error
}

func (repo *ContactRepository) Delete(workspaceID uint, contactID uint) error {
	return repo.database.
		Where("workspace_id = ?", workspaceID).
		Delete(&models.Contact{}, contactID).Error
}
