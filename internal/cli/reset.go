// Package cli holds operator commands that run against the database
// directly, outside the HTTP server.
package cli

import (
	"errors"
	"fmt"

	"github.com/winslowhq/cordial/internal/db"
	"github.com/winslowhq/cordial/internal/models"
	"github.com/winslowhq/cordial/internal/security"
	"github.com/winslowhq/cordial/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const temporaryPasswordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RunResetPasswordCommand sets a generated temporary password for the
// account and revokes its sessions. For operators locked-out users reach
// out to; the web reset flow stays the normal path.
func RunResetPasswordCommand(dbPath string, email string) error {
	normalizedEmail := services.NormalizeEmail(email)
	if normalizedEmail == "" {
		return errors.New("email is required")
	}
	if err := services.ValidateEmail(normalizedEmail); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	var user models.User
	if err := database.Where("email = ?", normalizedEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}

	temporaryPassword, err := security.RandomString(12, temporaryPasswordAlphabet)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}

	user.PasswordHash = string(passwordHash)
	if err := database.Save(&user).Error; err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	if err := database.Where("user_id = ?", user.ID).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}

	fmt.Println("Password reset successful")
	fmt.Printf("Temporary password: %s\n", temporaryPassword)
	fmt.Println("The user should change it after signing in.")

	return nil
}
