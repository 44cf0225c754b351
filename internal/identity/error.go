package identity

import "errors"

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInviteInvalid      = errors.New("invalid or expired invite")
)
