package services

import (
	"errors"
	"net/mail"
	"strings"
)

const minPasswordLength = 8

var (
	errEmailRequired    = errors.New("email is required")
	errEmailInvalid     = errors.New("email is invalid")
	errPasswordRequired = errors.New("password is required")
	errPasswordTooShort = errors.New("password is too short")
)

// NormalizeEmail lowercases and trims an address; lookups always go
// through the same normalization.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func ValidateEmail(raw string) error {
	email := NormalizeEmail(raw)
	if email == "" {
		return errEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errEmailInvalid
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return errPasswordRequired
	}
	if len(password) < minPasswordLength {
		return errPasswordTooShort
	}
	return nil
}
