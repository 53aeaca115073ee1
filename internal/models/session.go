package models

import "time"

// Session is a server-side login session keyed by an opaque token. The
// token is the only credential the client holds; expiry is checked on
// every lookup, expired rows are removed lazily.
type Session struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"uniqueIndex;not null"`
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

func (session *Session) Expired(now time.Time) bool {
	return !session.ExpiresAt.After(now)
}

// PasswordReset is a single-use reset token. Consumed on successful reset
// or deleted once expiry is detected.
type PasswordReset struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"uniqueIndex;not null"`
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (reset *PasswordReset) Expired(now time.Time) bool {
	return !reset.ExpiresAt.After(now)
}
