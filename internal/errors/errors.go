package errors

import (
	"errors"
	"fmt"
)

// Common error types for the portal
var (
	// Form validation errors
	ErrMissingFields    = errors.New("missing required fields")
	ErrPasswordMismatch = errors.New("passwords do not match")

	// Recipe search errors
	ErrSearchUnavailable = errors.New("recipe search unavailable")

	// Mocked identity provider errors
	ErrAuthError         = errors.New("auth error")
	ErrTransitionPending = errors.New("transition already pending")
	ErrProviderClosed    = errors.New("auth provider closed")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Navigation errors
	ErrUnknownDestination = errors.New("unknown destination")
	ErrUnknownView        = errors.New("unknown view")

	// General errors
	ErrNotFound = errors.New("not found")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// IsRecoverable reports whether err belongs to the portal's user-facing taxonomy: the screen that
// produced it stays interactive and the user may simply retry.
func IsRecoverable(err error) bool {
	for _, target := range []error{ErrMissingFields, ErrPasswordMismatch, ErrSearchUnavailable, ErrAuthError, ErrTransitionPending} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
