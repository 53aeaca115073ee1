package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/winslowhq/cordial/internal/db"
	"github.com/winslowhq/cordial/internal/models"
	"github.com/winslowhq/cordial/internal/security"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	resetTokenTTL    = 24 * time.Hour
	resetTokenLength = 48
)

// ResetMailer dispatches the reset link. The queue-backed implementation
// lives in internal/mail.
type ResetMailer interface {
	EnqueueSendPasswordReset(email string, token string) error
}

type PasswordResetService struct {
	users    *db.UserRepository
	resets   *db.PasswordResetRepository
	sessions *db.SessionRepository
	mailer   ResetMailer
}

func NewPasswordResetService(
	users *db.UserRepository,
	resets *db.PasswordResetRepository,
	sessions *db.SessionRepository,
	mailer ResetMailer,
) *PasswordResetService {
	return &PasswordResetService{users: users, resets: resets, sessions: sessions, mailer: mailer}
}

// Request issues a reset token for the account, if one exists. The caller
// answers identically whether or not the email is registered, so account
// existence never leaks.
func (service *PasswordResetService) Request(email string) error {
	user, err := service.users.FindByNormalizedEmail(NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("load user: %w", err)
	}
	if !user.HasCredential() {
		// OAuth-only accounts have no password to reset.
		return nil
	}

	token, err := security.RandomHexToken(resetTokenLength)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	now := time.Now()
	reset := models.PasswordReset{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: now.Add(resetTokenTTL),
		CreatedAt: now,
	}
	if err := service.resets.Replace(&reset); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	if err := service.mailer.EnqueueSendPasswordReset(user.Email, token); err != nil {
		return fmt.Errorf("enqueue reset mail: %w", err)
	}
	return nil
}

// Reset consumes the token and stores the new password. An expired token
// is deleted on detection and reported as ErrTokenExpired; an unknown one
// as ErrNotFound. All other sessions for the user are revoked.
func (service *PasswordResetService) Reset(token string, password string) error {
	reset, err := service.resets.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load reset token: %w", err)
	}
	if reset.Expired(time.Now()) {
		_ = service.resets.DeleteByID(reset.ID)
		return ErrTokenExpired
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := service.users.UpdatePassword(reset.UserID, string(passwordHash)); err != nil {
		return fmt.Errorf("store password: %w", err)
	}
	if err := service.resets.DeleteByID(reset.ID); err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}
	if err := service.sessions.DeleteAllForUser(reset.UserID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}
