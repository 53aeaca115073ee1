package services

import (
	"errors"
	"testing"
	"time"

	"github.com/winslowhq/cordial/internal/db"
	"github.com/winslowhq/cordial/internal/models"
	"gorm.io/gorm"
)

func newInvitationFixture(t *testing.T) (*gorm.DB, *db.Repositories, *InvitationService, *recordingMailer) {
	t.Helper()

	database, repositories := newTestDatabase(t)
	workspaceService := NewWorkspaceService(repositories.Workspaces)
	mailer := newRecordingMailer()
	service := NewInvitationService(repositories.Invitations, repositories.Workspaces, workspaceService, mailer)
	return database, repositories, service, mailer
}

func TestInvitationRoundTrip(t *testing.T) {
	_, repositories, service, mailer := newInvitationFixture(t)
	owner := createTestUser(t, repositories, "owner@example.com", "password123")
	invitee := createTestUser(t, repositories, "invitee@example.com", "password123")

	workspaceService := NewWorkspaceService(repositories.Workspaces)
	workspace, err := workspaceService.Create(owner.ID, "Acme", "", "")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}

	invitation, err := service.Invite(owner.ID, workspace.ID, "Invitee@Example.com", models.RoleMember)
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	if invitation.Email != "invitee@example.com" {
		t.Fatalf("invitation email = %q, want normalized invitee@example.com", invitation.Email)
	}
	if len(invitation.Token) != invitationTokenLength {
		t.Fatalf("invitation token len = %d, want %d", len(invitation.Token), invitationTokenLength)
	}
	if mailer.invitationTokens["invitee@example.com"] != invitation.Token {
		t.Fatal("invitation mail was not enqueued with the issued token")
	}

	member, err := service.Accept(invitation.Token, invitee.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if member.WorkspaceID != workspace.ID || member.Role != models.RoleMember {
		t.Fatalf("accepted membership = %+v, want member of workspace %d", member, workspace.ID)
	}

	role, err := workspaceService.GetRole(invitee.ID, workspace.ID)
	if err != nil {
		t.Fatalf("GetRole after accept: %v", err)
	}
	if role != models.RoleMember {
		t.Fatalf("role after accept = %q, want member", role)
	}
}

func TestInvitationAcceptIsSingleUse(t *testing.T) {
	_, repositories, service, _ := newInvitationFixture(t)
	owner := createTestUser(t, repositories, "owner@example.com", "password123")
	first := createTestUser(t, repositories, "first@example.com", "password123")
	second := createTestUser(t, repositories, "second@example.com", "password123")

	workspace, err := NewWorkspaceService(repositories.Workspaces).Create(owner.ID, "Acme", "", "")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	invitation, err := service.Invite(owner.ID, workspace.ID, "first@example.com", models.RoleMember)
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}

	if _, err := service.Accept(invitation.Token, first.ID); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}
	if _, err := service.Accept(invitation.Token, second.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("replayed accept expected ErrNotFound, got %v", err)
	}
}

func TestInvitationAcceptRejectsExpiredToken(t *testing.T) {
	database, repositories, service, _ := newInvitationFixture(t)
	owner := createTestUser(t, repositories, "owner@example.com", "password123")
	invitee := createTestUser(t, repositories, "invitee@example.com", "password123")

	workspace, err := NewWorkspaceService(repositories.Workspaces).Create(owner.ID, "Acme", "", "")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	invitation, err := service.Invite(owner.ID, workspace.ID, "invitee@example.com", models.RoleMember)
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}

	if err := database.Model(&models.WorkspaceInvitation{}).
		Where("id = ?", invitation.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("expire invitation: %v", err)
	}

	if _, err := service.Accept(invitation.Token, invitee.ID); !errors.Is(err, ErrInvitationExpired) {
		t.Fatalf("expired accept expected ErrInvitationExpired, got %v", err)
	}

	// Detection removed the row, so a retry replays as unknown.
	if _, err := service.Accept(invitation.Token, invitee.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("retry after expiry expected ErrNotFound, got %v", err)
	}
}

func TestInvitationResendRotatesToken(t *testing.T) {
	_, repositories, service, mailer := newInvitationFixture(t)
	owner := createTestUser(t, repositories, "owner@example.com", "password123")

	workspace, err := NewWorkspaceService(repositories.Workspaces).Create(owner.ID, "Acme", "", "")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	invitation, err := service.Invite(owner.ID, workspace.ID, "invitee@example.com", models.RoleMember)
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	originalToken := invitation.Token

	resent, err := service.Resend(owner.ID, workspace.ID, invitation.ID)
	if err != nil {
		t.Fatalf("resend failed: %v", err)
	}
	if resent.Token == originalToken {
		t.Fatal("resend kept the old token")
	}
	if mailer.invitationTokens["invitee@example.com"] != resent.Token {
		t.Fatal("resend did not enqueue mail with the fresh token")
	}

	invitee := createTestUser(t, repositories, "invitee@example.com", "password123")
	if _, err := service.Accept(originalToken, invitee.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stale token expected ErrNotFound, got %v", err)
	}
	if _, err := service.Accept(resent.Token, invitee.ID); err != nil {
		t.Fatalf("fresh token accept failed: %v", err)
	}
}

func TestInvitationCancelRemovesPendingInvitation(t *testing.T) {
	_, repositories, service, _ := newInvitationFixture(t)
	owner := createTestUser(t, repositories, "owner@example.com", "password123")
	invitee := createTestUser(t, repositories, "invitee@example.com", "password123")

	workspace, err := NewWorkspaceService(repositories.Workspaces).Create(owner.ID, "Acme", "", "")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	invitation, err := service.Invite(owner.ID, workspace.ID, "invitee@example.com", models.RoleMember)
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}

	if err := service.Cancel(owner.ID, workspace.ID, invitation.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := service.Accept(invitation.Token, invitee.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cancelled token expected ErrNotFound, got %v", err)
	}

	pending, err := service.ListPending(owner.ID, workspace.ID)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending invitations = %d, want 0", len(pending))
	}
}

func TestInviteRejectsUnauthorizedCallersAndBadInput(t *testing.T) {
	_, repositories, service, _ := newInvitationFixture(t)
	owner := createTestUser(t, repositories, "owner@example.com", "password123")
	member := createTestUser(t, repositories, "member@example.com", "password123")

	workspace, err := NewWorkspaceService(repositories.Workspaces).Create(owner.ID, "Acme", "", "")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	addMember(t, repositories, workspace.ID, member.ID, models.RoleMember)

	if _, err := service.Invite(member.ID, workspace.ID, "new@example.com", models.RoleMember); !errors.Is(err, ErrForbidden) {
		t.Fatalf("member inviting expected ErrForbidden, got %v", err)
	}
	if _, err := service.Invite(owner.ID, workspace.ID, "not-an-email", models.RoleMember); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad email expected ErrValidation, got %v", err)
	}
	if _, err := service.Invite(owner.ID, workspace.ID, "new@example.com", models.RoleOwner); !errors.Is(err, ErrValidation) {
		t.Fatalf("owner role expected ErrValidation, got %v", err)
	}
}
