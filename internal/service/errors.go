package service

import (
	"errors"
	"fmt"
)

// Errors returned by the services. Callers match them with errors.Is; the
// wrapped message carries the detail.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access denied")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrQuotaExceeded      = errors.New("daily generation quota exceeded")
	ErrUpstream           = errors.New("upstream failure")
	ErrNoProgram          = errors.New("no active program")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func upstreamError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUpstream, op, err)
}
