package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrConfiguration is returned when a component is wired with an
	// inconsistent set of collaborators. It is fatal and never retried.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrIntegrity signals that a collaborator broke its contract, for
	// example a user provider returning no principal without an error.
	ErrIntegrity = errors.New("integrity violation")

	// ErrAuthentication is the root of every authentication failure.
	// Errors in this family are surfaced to the caller as "authentication
	// failed" and are never wrapped again.
	ErrAuthentication = errors.New("authentication failed")
)

// Authentication-family errors. Each one matches ErrAuthentication via errors.Is.
var (
	ErrUserNotFound   = fmt.Errorf("%w: user not found", ErrAuthentication)
	ErrUserDisabled   = fmt.Errorf("%w: user account is disabled", ErrAuthentication)
	ErrUserLocked     = fmt.Errorf("%w: user account is locked", ErrAuthentication)
	ErrAccountExpired = fmt.Errorf("%w: user account has expired", ErrAuthentication)
)
