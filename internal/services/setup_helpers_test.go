package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/winslowhq/cordial/internal/db"
	"github.com/winslowhq/cordial/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDatabase(t *testing.T) (*gorm.DB, *db.Repositories) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "cordial-service-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return database, db.NewRepositories(database)
}

func createTestUser(t *testing.T, repositories *db.Repositories, email string, password string) models.User {
	t.Helper()

	user := models.User{
		Name:      "Test User",
		Email:     email,
		CreatedAt: time.Now(),
	}
	if password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		user.PasswordHash = string(passwordHash)
	}
	if err := repositories.Users.Create(&user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func addMember(t *testing.T, repositories *db.Repositories, workspaceID uint, userID uint, role string) models.WorkspaceMember {
	t.Helper()

	member := models.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
		CreatedAt:   time.Now(),
	}
	if err := repositories.Workspaces.CreateMember(&member); err != nil {
		t.Fatalf("add member %d to workspace %d: %v", userID, workspaceID, err)
	}
	return member
}

// recordingMailer captures enqueued messages instead of delivering them.
type recordingMailer struct {
	resetTokens      map[string]string
	invitationTokens map[string]string
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{
		resetTokens:      make(map[string]string),
		invitationTokens: make(map[string]string),
	}
}

func (mailer *recordingMailer) EnqueueSendPasswordReset(email string, token string) error {
	mailer.resetTokens[email] = token
	return nil
}

func (mailer *recordingMailer) EnqueueSendInvitation(email string, token string, workspaceName string) error {
	mailer.invitationTokens[email] = token
	return nil
}
