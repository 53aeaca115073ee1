package db

import (
	"errors"

	"github.com/winslowhq/cordial/internal/models"
	"gorm.io/gorm"
)

type WorkspaceRepository struct {
	database *gorm.DB
}

func NewWorkspaceRepository(database *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{database: database}
}

func (repo *WorkspaceRepository) FindByID(workspaceID uint) (models.Workspace, error) {
	var workspace models.Workspace
	if err := repo.database.First(&workspace, workspaceID).Error; err != nil {
		return models.Workspace{}, err
	}
	return workspace, nil
}

// ListForUser returns every workspace where the user holds a membership
// row, ordered by creation.
func (repo *WorkspaceRepository) ListForUser(userID uint) ([]models.Workspace, error) {
	workspaces := make([]models.Workspace, 0)
	if err := repo.database.
		Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ?", userID).
		Order("workspaces.created_at").
		Find(&workspaces).Error; err != nil {
		return nil, err
	}
	return workspaces, nil
}

func (repo *WorkspaceRepository) SlugExists(slug string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Workspace{}).
		Where("slug = ?", slug).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// CreateWithOwner inserts the workspace and its owner membership row in
// one transaction, so a workspace never exists without its owner member.
func (repo *WorkspaceRepository) CreateWithOwner(workspace *models.Workspace) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(workspace).Error; err != nil {
			return err
		}
		member := models.WorkspaceMember{
			WorkspaceID: workspace.ID,
			UserID:      workspace.OwnerID,
			Role:        models.RoleOwner,
			CreatedAt:   workspace.CreatedAt,
		}
		return tx.Create(&member).Error
	})
}

func (repo *WorkspaceRepository) Save(workspace *models.Workspace) error {
	return repo.database.Save(workspace).Error
}

func (repo *WorkspaceRepository) Delete(workspaceID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workspace_id = ?", workspaceID).
			Delete(&models.WorkspaceMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", workspaceID).
			Delete(&models.WorkspaceInvitation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", workspaceID).
			Delete(&models.Contact{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Workspace{}, workspaceID).Error
	})
}

func (repo *WorkspaceRepository) FindMember(workspaceID uint, userID uint) (models.WorkspaceMember, error) {
	var member models.WorkspaceMember
	if err := repo.database.
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&member).Error; err != nil {
		return models.WorkspaceMember{}, err
	}
	return member, nil
}

func (repo *WorkspaceRepository) FindMemberByID(workspaceID uint, memberID uint) (models.WorkspaceMember, error) {
	var member models.WorkspaceMember
	if err := repo.database.
		Where("workspace_id = ? AND id = ?", workspaceID, memberID).
		First(&member).Error; err != nil {
		return models.WorkspaceMember{}, err
	}
	return member, nil
}

func (repo *WorkspaceRepository) ListMembers(workspaceID uint) ([]models.WorkspaceMember, error) {
	members := make([]models.WorkspaceMember, 0)
	if err := repo.database.Preload("User").
		Where("workspace_id = ?", workspaceID).
		Order("created_at").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (repo *WorkspaceRepository) CreateMember(member *models.WorkspaceMember) error {
	return repo.database.Create(member).Error
}

// UpsertMember creates the membership row or, when one already exists for
// the user, leaves it untouched and returns it.
func (repo *WorkspaceRepository) UpsertMember(member *models.WorkspaceMember) error {
	existing, err := repo.FindMember(member.WorkspaceID, member.UserID)
	if err == nil {
		*member = existing
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return repo.database.Create(member).Error
}

func (repo *WorkspaceRepository) UpdateMemberRole(memberID uint, role string) error {
	return repo.database.Model(&models.WorkspaceMember{}).
		Where("id = ?", memberID).
		Update("role", role).Error
}

func (repo *WorkspaceRepository) DeleteMember(memberID uint) error {
	return repo.database.Delete(&models.WorkspaceMember{}, memberID).Error
}
