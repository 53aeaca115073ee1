package db

import (
	"errors"

	"github.com/winslowhq/cordial/internal/models"
	"gorm.io/gorm"
)

type InvitationRepository struct {
	database *gorm.DB
}

func NewInvitationRepository(database *gorm.DB) *InvitationRepository {
	return &InvitationRepository{database: database}
}

func (repo *InvitationRepository) Create(invitation *models.WorkspaceInvitation) error {
	return repo.database.Create(invitation).Error
}

func (repo *InvitationRepository) FindByID(invitationID uint) (models.WorkspaceInvitation, error) {
	var invitation models.WorkspaceInvitation
	if err := repo.database.First(&invitation, invitationID).Error; err != nil {
		return models.WorkspaceInvitation{}, err
	}
	return invitation, nil
}

func (repo *InvitationRepository) FindByToken(token string) (models.WorkspaceInvitation, error) {
	var invitation models.WorkspaceInvitation
	if err := repo.database.Where("token = ?", token).First(&invitation).Error; err != nil {
		return models.WorkspaceInvitation{}, err
	}
	return invitation, nil
}

func (repo *InvitationRepository) ListForWorkspace(workspaceID uint) ([]models.WorkspaceInvitation, error) {
	invitations := make([]models.WorkspaceInvitation, 0)
	if err := repo.database.
		Where("workspace_id = ?", workspaceID).
		Order("created_at").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

func (repo *InvitationRepository) Save(invitation *models.WorkspaceInvitation) error {
	return repo.database.Save(invitation).Error
}

func (repo *InvitationRepository) Delete(invitationID uint) error {
	return repo.database.Delete(&models.WorkspaceInvitation{}, invitationID).Error
}

// Consume converts an invitation into a membership row and removes the
// invitation in the same transaction, so a token can never be redeemed
// twice.
func (repo *InvitationRepository) Consume(invitation *models.WorkspaceInvitation, member *models.WorkspaceMember) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var existing models.WorkspaceMember
		err := tx.Where("workspace_id = ? AND user_id = ?", member.WorkspaceID, member.UserID).
			First(&existing).Error
		switch {
		case err == nil:
			*member = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(member).Error; err != nil {
				return err
			}
		default:
			return err
		}
		return tx.Delete(&models.WorkspaceInvitation{}, invitation.ID).Error
	})
}
