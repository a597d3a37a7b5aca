package service

import "errors"

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials covers every login rejection: unknown email,
	// no password set, wrong password, deactivated account. Callers must
	// not distinguish between them.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailTaken   = errors.New("email already in use")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrNotFound     = errors.New("not found")
)
