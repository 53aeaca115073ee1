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

type WorkspaceService struct {
	workspaces *db.WorkspaceRepository
}

func NewWorkspaceService(workspaces *db.WorkspaceRepository) *WorkspaceService {
	return &WorkspaceService{workspaces: workspaces}
}

// ListFor returns the user's workspaces. A user with none gets a default
// workspace created on the spot (workspace plus owner membership in one
// transaction) — first-login bootstrapping, not a user-invoked action.
func (service *WorkspaceService) ListFor(user models.User) ([]models.Workspace, error) {
	workspaces, err := service.workspaces.ListForUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	if len(workspaces) > 0 {
		return workspaces, nil
	}

	workspace, err := service.Create(user.ID, defaultWorkspaceName(user), "", "")
	if err != nil {
		return nil, err
	}
	return []models.Workspace{workspace}, nil
}

// Create inserts a workspace owned by ownerID. Slug collisions retry once
// with a timestamp suffix.
func (service *WorkspaceService) Create(ownerID uint, name string, description string, logo string) (models.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Workspace{}, fmt.Errorf("%w: workspace name is required", ErrValidation)
	}

	slug, err := service.resolveSlug(name)
	if err != nil {
		return models.Workspace{}, err
	}

	workspace := models.Workspace{
		Name:        name,
		Slug:        slug,
		Logo:        logo,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
	}
	if err := service.workspaces.CreateWithOwner(&workspace); err != nil {
		return models.Workspace{}, fmt.Errorf("create workspace: %w", err)
	}
	return workspace, nil
}

func (service *WorkspaceService) resolveSlug(name string) (string, error) {
	slug := DeriveSlug(name)
	taken, err := service.workspaces.SlugExists(slug)
	if err != nil {
		return "", fmt.Errorf("check slug: %w", err)
	}
	if taken {
		slug = uniqueSlugSuffix(slug, time.Now())
	}
	return slug, nil
}

// Get loads a workspace for a member. Non-members get ErrNotFound rather
// than ErrForbidden, so workspace existence never leaks.
func (service *WorkspaceService) Get(userID uint, workspaceID uint) (models.Workspace, error) {
	role, err := service.GetRole(userID, workspaceID)
	if err != nil {
		return models.Workspace{}, err
	}
	if role == "" {
		return models.Workspace{}, ErrNotFound
	}
	workspace, err := service.workspaces.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Workspace{}, ErrNotFound
		}
		return models.Workspace{}, fmt.Errorf("load workspace: %w", err)
	}
	return workspace, nil
}

type WorkspaceUpdate struct {
	Name        *string
	Description *string
	Logo        *string
}

// Update applies a partial update. A rename re-derives the slug.
func (service *WorkspaceService) Update(callerID uint, workspaceID uint, update WorkspaceUpdate) (models.Workspace, error) {
	if err := service.RequireRole(callerID, workspaceID, models.RoleOwner, models.RoleAdmin); err != nil {
		return models.Workspace{}, err
	}

	workspace, err := service.workspaces.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Workspace{}, ErrNotFound
		}
		return models.Workspace{}, fmt.Errorf("load workspace: %w", err)
	}

	if update.Name != nil && strings.TrimSpace(*update.Name) != "" && strings.TrimSpace(*update.Name) != workspace.Name {
		workspace.Name = strings.TrimSpace(*update.Name)
		slug, err := service.resolveSlug(workspace.Name)
		if err != nil {
			return models.Workspace{}, err
		}
		workspace.Slug = slug
	}
	if update.Description != nil {
		workspace.Description = *update.Description
	}
	if update.Logo != nil {
		workspace.Logo = *update.Logo
	}
	workspace.UpdatedAt = time.Now()

	if err := service.workspaces.Save(&workspace); err != nil {
		return models.Workspace{}, fmt.Errorf("save workspace: %w", err)
	}
	return workspace, nil
}

// Delete removes the workspace and everything scoped to it. Owner only.
func (service *WorkspaceService) Delete(callerID uint, workspaceID uint) error {
	if err := service.RequireRole(callerID, workspaceID, models.RoleOwner); err != nil {
		return err
	}
	if err := service.workspaces.Delete(workspaceID); err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	return nil
}

// GetRole returns the member's role, or "" when the user has no
// membership row.
func (service *WorkspaceService) GetRole(userID uint, workspaceID uint) (string, error) {
	member, err := service.workspaces.FindMember(workspaceID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("load membership: %w", err)
	}
	return member.Role, nil
}

// RequireRole fails with ErrNotFound for non-members (existence must not
// leak) and ErrForbidden for members outside the allowed set.
func (service *WorkspaceService) RequireRole(userID uint, workspaceID uint, allowed ...string) error {
	role, err := service.GetRole(userID, workspaceID)
	if err != nil {
		return err
	}
	if role == "" {
		return ErrNotFound
	}
	for _, candidate := range allowed {
		if role == candidate {
			return nil
		}
	}
	return ErrForbidden
}

func (service *WorkspaceService) ListMembers(callerID uint, workspaceID uint) ([]models.WorkspaceMember, error) {
	if err := service.RequireRole(callerID, workspaceID,
		models.RoleOwner, models.RoleAdmin, models.RoleMember, models.RoleGuest); err != nil {
		return nil, err
	}
	members, err := service.workspaces.ListMembers(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// ChangeMemberRole enforces the member-mutation invariants: only owner or
// admin may change roles, the owner row is untouchable by anyone but the
// owner and must keep role owner, and role owner cannot be granted to
// another member here.
func (service *WorkspaceService) ChangeMemberRole(callerID uint, workspaceID uint, memberID uint, role string) (models.WorkspaceMember, error) {
	if err := service.RequireRole(callerID, workspaceID, models.RoleOwner, models.RoleAdmin); err != nil {
		return models.WorkspaceMember{}, err
	}
	if !models.ValidWorkspaceRole(role) {
		return models.WorkspaceMember{}, fmt.Errorf("%w: invalid role", ErrValidation)
	}

	workspace, err := service.workspaces.FindByID(workspaceID)
	if err != nil {
		return models.WorkspaceMember{}, fmt.Errorf("load workspace: %w", err)
	}
	member, err := service.workspaces.FindMemberByID(workspaceID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.WorkspaceMember{}, ErrNotFound
		}
		return models.WorkspaceMember{}, fmt.Errorf("load member: %w", err)
	}

	if member.UserID == workspace.OwnerID {
		if callerID != workspace.OwnerID || role != models.RoleOwner {
			return models.WorkspaceMember{}, ErrForbidden
		}
		return member, nil
	}
	if role == models.RoleOwner {
		return models.WorkspaceMember{}, ErrForbidden
	}

	if err := service.workspaces.UpdateMemberRole(member.ID, role); err != nil {
		return models.WorkspaceMember{}, fmt.Errorf("update member role: %w", err)
	}
	member.Role = role
	return member, nil
}

// RemoveMember enforces: owner or admin only, the owner cannot be removed
// through this path, and neither can the caller remove themselves.
func (service *WorkspaceService) RemoveMember(callerID uint, workspaceID uint, memberID uint) error {
	if err := service.RequireRole(callerID, workspaceID, models.RoleOwner, models.RoleAdmin); err != nil {
		return err
	}

	workspace, err := service.workspaces.FindByID(workspaceID)
	if err != nil {
		return fmt.Errorf("load workspace: %w", err)
	}
	member, err := service.workspaces.FindMemberByID(workspaceID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load member: %w", err)
	}

	if member.UserID == workspace.OwnerID {
		return ErrForbidden
	}
	if member.UserID == callerID {
		return ErrForbidden
	}

	if err := service.workspaces.DeleteMember(member.ID); err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}

func defaultWorkspaceName(user models.User) string {
	name := strings.TrimSpace(user.Name)
	if name == "" {
		if at := strings.IndexByte(user.Email, '@'); at > 0 {
			name = user.Email[:at]
		} else {
			name = user.Email
		}
	}
	return name + "'s Workspace"
}
