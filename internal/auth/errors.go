package auth

import (
	"errors"
	"fmt"

	"fbauth/internal/domain"
)

// ErrProviderNotFound is returned by ProviderManager when no provider
// supports the submitted token.
var ErrProviderNotFound = fmt.Errorf("%w: no authentication provider supports the token", domain.ErrAuthentication)

// AuthenticationError reports a failed authentication attempt. It matches
// domain.ErrAuthentication and unwraps to the underlying cause, if any.
type AuthenticationError struct {
	Message string
	Err     error
}

// NewAuthenticationError returns an AuthenticationError without a cause.
func NewAuthenticationError(msg string) *AuthenticationError {
	return &AuthenticationError{Message: msg}
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

func (e *AuthenticationError) Is(target error) bool {
	return target == domain.ErrAuthentication
}

// WrapAuthentication normalizes err into the authentication family. Errors
// that already belong to it are returned unchanged; anything else becomes an
// AuthenticationError carrying the original message and cause.
func WrapAuthentication(err error) error {
	if err == nil || errors.Is(err, domain.ErrAuthentication) {
		return err
	}
	return &AuthenticationError{Message: err.Error(), Err: err}
}
