package models

import "time"

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `json:"-"`
	Image        string     `json:"image"`
	Role         string     `json:"role"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"createdAt"`
}

// PublicUser is the projection handed to clients. It never carries the
// password hash.
type PublicUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
	Role  string `json:"role"`
}

func (user *User) Public() PublicUser {
	return PublicUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Image: user.Image,
		Role:  user.Role,
	}
}

// HasCredential reports whether the account can sign in with a password.
// OAuth-only accounts store no hash.
func (user *User) HasCredential() bool {
	return user.PasswordHash != ""
}
