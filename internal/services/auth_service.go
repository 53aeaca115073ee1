package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/winslowhq/cordial/internal/db"
	"github.com/winslowhq/cordial/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionTTL is how long a login session stays valid. Expired rows are
// treated as absent on lookup; there is no background sweep.
const SessionTTL = 30 * 24 * time.Hour

// sessionTokenPattern matches the opaque token format (UUID v4 text
// form). The check is a cheap guard before any database round-trip, not a
// trust decision.
var sessionTokenPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidSessionTokenFormat reports whether raw looks like a session token.
func ValidSessionTokenFormat(raw string) bool {
	return sessionTokenPattern.MatchString(raw)
}

type AuthService struct {
	users    *db.UserRepository
	sessions *db.SessionRepository
}

func NewAuthService(users *db.UserRepository, sessions *db.SessionRepository) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Register creates a credential account. The caller validates input shape;
// here only uniqueness is enforced.
func (service *AuthService) Register(name string, email string, password string) (models.User, error) {
	normalized := NormalizeEmail(email)
	exists, err := service.users.ExistsByNormalizedEmail(normalized)
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		Email:        normalized,
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, ErrEmailTaken
	}
	return user, nil
}

// Login verifies the credential pair and issues a fresh session. A missing
// user, an OAuth-only account (no stored hash) and a wrong password all
// fail the same way.
func (service *AuthService) Login(email string, password string) (models.User, string, error) {
	user, err := service.users.FindByNormalizedEmail(NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", fmt.Errorf("load user: %w", err)
	}
	if !user.HasCredential() {
		return models.User{}, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := service.IssueSession(user.ID)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// IssueSession stores a new session row and returns its opaque token.
func (service *AuthService) IssueSession(userID uint) (string, error) {
	now := time.Now()
	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(SessionTTL),
		CreatedAt: now,
	}
	if err := service.sessions.Create(&session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	if err := service.users.TouchLastLogin(userID, now); err != nil {
		return "", fmt.Errorf("touch last login: %w", err)
	}
	return session.Token, nil
}

// Validate resolves a token to its user. A malformed token is rejected
// without touching the database. A missing row and an expired row are
// indistinguishable to the caller: both return nil.
func (service *AuthService) Validate(token string) (*models.User, error) {
	if !ValidSessionTokenFormat(token) {
		return nil, nil
	}
	session, err := service.sessions.FindByTokenWithUser(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session.Expired(time.Now()) {
		return nil, nil
	}
	user := session.User
	return &user, nil
}

// Logout deletes the session row. Calling it for an unknown token is a
// no-op.
func (service *AuthService) Logout(token string) error {
	if !ValidSessionTokenFormat(token) {
		return nil
	}
	return service.sessions.DeleteByToken(token)
}

// FindOrCreateOAuthUser resolves an OAuth identity to a local account,
// creating one without a password hash on first sign-in.
func (service *AuthService) FindOrCreateOAuthUser(email string, name string, image string) (models.User, error) {
	normalized := NormalizeEmail(email)
	user, err := service.users.FindByNormalizedEmail(normalized)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}

	user = models.User{
		Name:      name,
		Email:     normalized,
		Image:     image,
		CreatedAt: time.Now(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("create oauth user: %w", err)
	}
	return user, nil
}
