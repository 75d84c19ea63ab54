package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInput      = errors.New("invalid input")
	ErrNoActiveInterview = errors.New("no active interview")
	ErrRateLimited       = errors.New("rate limited")
)

// ErrUserNotFound and ErrUnknownMode are NotFound-class errors; they match
// errors.Is(err, ErrNotFound).
var (
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	ErrUnknownMode  = fmt.Errorf("interview mode %w", ErrNotFound)
)
