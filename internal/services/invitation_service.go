package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/winslowhq/cordial/internal/db"
	"github.com/winslowhq/cordial/internal/models"
	"github.com/winslowhq/cordial/internal/security"
	"gorm.io/gorm"
)

const (
	invitationTTL         = 7 * 24 * time.Hour
	invitationTokenLength = 32
)

// InvitationMailer dispatches the invite link to the invitee.
type InvitationMailer interface {
	EnqueueSendInvitation(email string, token string, workspaceName string) error
}

type InvitationService struct {
	invitations *db.InvitationRepository
	workspaces  *db.WorkspaceRepository
	roles       *WorkspaceService
	mailer      InvitationMailer
}

func NewInvitationService(
	invitations *db.InvitationRepository,
	workspaces *db.WorkspaceRepository,
	roles *WorkspaceService,
	mailer InvitationMailer,
) *InvitationService {
	return &InvitationService{
		invitations: invitations,
		workspaces:  workspaces,
		roles:       roles,
		mailer:      mailer,
	}
}

// Invite creates a pending invitation and dispatches its link. Owner or
// admin only; the owner role cannot be handed out by invitation.
func (service *InvitationService) Invite(callerID uint, workspaceID uint, email string, role string) (models.WorkspaceInvitation, error) {
	if err := service.roles.RequireRole(callerID, workspaceID, models.RoleOwner, models.RoleAdmin); err != nil {
		return models.WorkspaceInvitation{}, err
	}
	if err := ValidateEmail(email); err != nil {
		return models.WorkspaceInvitation{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if !models.ValidWorkspaceRole(role) || role == models.RoleOwner {
		return models.WorkspaceInvitation{}, fmt.Errorf("%w: invalid invitation role", ErrValidation)
	}

	workspace, err := service.workspaces.FindByID(workspaceID)
	if err != nil {
		return models.WorkspaceInvitation{}, fmt.Errorf("load workspace: %w", err)
	}

	token, err := security.RandomHexToken(invitationTokenLength)
	if err != nil {
		return models.WorkspaceInvitation{}, fmt.Errorf("generate invitation token: %w", err)
	}

	now := time.Now()
	invitation := models.WorkspaceInvitation{
		WorkspaceID: workspaceID,
		Email:       NormalizeEmail(email),
		Role:        role,
		Token:       token,
		ExpiresAt:   now.Add(invitationTTL),
		CreatedAt:   now,
	}
	if err := service.invitations.Create(&invitation); err != nil {
		return models.WorkspaceInvitation{}, fmt.Errorf("store invitation: %w", err)
	}

	if err := service.mailer.EnqueueSendInvitation(invitation.Email, token, workspace.Name); err != nil {
		return models.WorkspaceInvitation{}, fmt.Errorf("enqueue invitation mail: %w", err)
	}
	return invitation, nil
}

// Accept redeems a token for the authenticated user. Expired invitations
// are removed on detection; a consumed token replays as ErrNotFound.
func (service *InvitationService) Accept(token string, userID uint) (models.WorkspaceMember, error) {
	invitation, err := service.invitations.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.WorkspaceMember{}, ErrNotFound
		}
		return models.WorkspaceMember{}, fmt.Errorf("load invitation: %w", err)
	}
	if invitation.Expired(time.Now()) {
		_ = service.invitations.Delete(invitation.ID)
		return models.WorkspaceMember{}, ErrInvitationExpired
	}

	member := models.WorkspaceMember{
		WorkspaceID: invitation.WorkspaceID,
		UserID:      userID,
		Role:        invitation.Role,
		CreatedAt:   time.Now(),
	}
	if err := service.invitations.Consume(&invitation, &member); err != nil {
		return models.WorkspaceMember{}, fmt.Errorf("consume invitation: %w", err)
	}
	return member, nil
}

// Resend re-issues the invitation with a fresh token and expiry.
func (service *InvitationService) Resend(callerID uint, workspaceID uint, invitationID uint) (models.WorkspaceInvitation, error) {
	if err := service.roles.RequireRole(callerID, workspaceID, models.RoleOwner, models.RoleAdmin); err != nil {
		return models.WorkspaceInvitation{}, err
	}

	invitation, err := service.invitations.FindByID(invitationID)
	if err != nil || invitation.WorkspaceID != workspaceID {
		if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
			return models.WorkspaceInvitation{}, ErrNotFound
		}
		return models.WorkspaceInvitation{}, fmt.Errorf("load invitation: %w", err)
	}

	token, err := security.RandomHexToken(invitationTokenLength)
	if err != nil {
		return models.WorkspaceInvitation{}, fmt.Errorf("generate invitation token: %w", err)
	}
	invitation.Token = token
	invitation.ExpiresAt = time.Now().Add(invitationTTL)
	if err := service.invitations.Save(&invitation); err != nil {
		return models.WorkspaceInvitation{}, fmt.Errorf("store invitation: %w", err)
	}

	workspace, err := service.workspaces.FindByID(workspaceID)
	if err != nil {
		return models.WorkspaceInvitation{}, fmt.Errorf("load workspace: %w", err)
	}
	if err := service.mailer.EnqueueSendInvitation(invitation.Email, token, workspace.Name); err != nil {
		return models.WorkspaceInvitation{}, fmt.Errorf("enqueue invitation mail: %w", err)
	}
	return invitation, nil
}

// Cancel discards a pending invitation.
func (service *InvitationService) Cancel(callerID uint, workspaceID uint, invitationID uint) error {
	if err := service.roles.RequireRole(callerID, workspaceID, models.RoleOwner, models.RoleAdmin); err != nil {
		return err
	}
	invitation, err := service.invitations.FindByID(invitationID)
	if err != nil || invitation.WorkspaceID != workspaceID {
		if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load invitation: %w", err)
	}
	if err := service.invitations.Delete(invitation.ID); err != nil {
		return fmt.Errorf("delete invitation: %w", err)
	}
	return nil
}

// ListPending returns the workspace's outstanding invitations.
func (service *InvitationService) ListPending(callerID uint, workspaceID uint) ([]models.WorkspaceInvitation, error) {
	if err := service.roles.RequireRole(callerID, workspaceID, models.RoleOwner, models.RoleAdmin); err != nil {
		return nil, err
	}
	invitations, err := service.invitations.ListForWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return invitations, nil
}
