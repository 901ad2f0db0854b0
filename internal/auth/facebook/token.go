package facebook

import (
	"fbauth/internal/auth"
	"fbauth/internal/port"
)

// UserToken is the token kind handled by Provider. Credential tokens are
// built with NewUserToken; authenticated tokens are only produced by the
// provider and are immutable.
type UserToken struct {
	providerKey   string
	user          port.Principal
	uid           string
	roles         []string
	attributes    auth.Attributes
	authenticated bool
}

// NewUserToken returns an unauthenticated credential token for the provider
// registered under providerKey. user may carry an already-resolved principal.
func NewUserToken(providerKey string, user port.Principal, attrs auth.Attributes) *UserToken {
	return &UserToken{
		providerKey: providerKey,
		user:        user,
		attributes:  attrs.Clone(),
	}
}

func newAuthenticatedToken(providerKey string, user port.Principal, attrs auth.Attributes) *UserToken {
	return &UserToken{
		providerKey:   providerKey,
		user:          user,
		uid:           user.UserIdentifier(),
		roles:         user.RoleNames(),
		attributes:    attrs.Clone(),
		authenticated: true,
	}
}

// newUIDToken proves a Facebook identity without a local account.
func newUIDToken(providerKey, uid string, attrs auth.Attributes) *UserToken {
	return &UserToken{
		providerKey:   providerKey,
		uid:           uid,
		attributes:    attrs.Clone(),
		authenticated: true,
	}
}

// ProviderKey returns the key of the provider the token is issued for.
func (t *UserToken) ProviderKey() string { return t.providerKey }

// User returns the resolved principal, or nil for a bare Facebook identity.
func (t *UserToken) User() port.Principal { return t.user }

// Identifier returns the Facebook user ID proven by the token.
func (t *UserToken) Identifier() string {
	if t.uid == "" && t.user != nil {
		return t.user.UserIdentifier()
	}
	return t.uid
}

// Roles returns a copy of the granted roles.
func (t *UserToken) Roles() []string {
	roles := make([]string, len(t.roles))
	copy(roles, t.roles)
	return roles
}

// Attributes returns a copy of the attribute bag.
func (t *UserToken) Attributes() auth.Attributes { return t.attributes.Clone() }

// IsAuthenticated reports whether the token was produced by a provider.
func (t *UserToken) IsAuthenticated() bool { return t.authenticated }

var _ auth.Token = (*UserToken)(nil)
