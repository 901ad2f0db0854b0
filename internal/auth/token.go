// Package auth holds the authentication pipeline shared by identity
// providers: the token model, the provider chain and the default account
// checker.
package auth

import (
	"context"
	"maps"

	"fbauth/internal/port"
)

// Attributes is the free-form metadata carried by a token. Providers copy it
// unchanged from the credential token to the authenticated token.
type Attributes map[string]any

// Clone returns a shallow copy of a. A nil bag stays nil.
func (a Attributes) Clone() Attributes {
	return maps.Clone(a)
}

// Token is either a credential submitted for authentication or the result of
// a successful authentication.
type Token interface {
	ProviderKey() string
	// Identifier names the authenticated subject, e.g. a Facebook UID.
	Identifier() string
	// User is the resolved principal, or nil when the token only proves an
	// external identity.
	User() port.Principal
	Roles() []string
	Attributes() Attributes
	IsAuthenticated() bool
}

// Provider authenticates the tokens it supports.
//
// Authenticate returns (nil, nil) for tokens the provider does not support so
// that a ProviderManager can move on to the next provider.
type Provider interface {
	Name() string
	Supports(token Token) bool
	Authenticate(ctx context.Context, token Token) (Token, error)
}
