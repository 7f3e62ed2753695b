package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	ErrBadgerNotFound    = errors.New("honey badger not found")
	ErrBadgerUnavailable = errors.New("honey badger not available")
	ErrBadgerAssigned    = errors.New("honey badger assigned to an active challenge")
	ErrBadgerLimit       = errors.New("honey badger limit reached")

	ErrChallengeNotFound = errors.New("challenge not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidState      = errors.New("invalid challenge state")

	ErrInvalidInput = errors.New("invalid input")
)
