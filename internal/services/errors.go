package services

import "errors"

// Domain failures the HTTP layer maps onto specific 4xx responses. Any
// other error surfaces as a generic 500.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrTokenExpired       = errors.New("reset token expired")
	ErrInvitationExpired  = errors.New("invitation expired")
	ErrValidation         = errors.New("validation failed")
)
