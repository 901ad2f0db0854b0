// Package facebook authenticates users signed in with Facebook.
package facebook

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"fbauth/internal/auth"
	"fbauth/internal/domain"
	"fbauth/internal/port"
)

const (
	// ProviderName identifies the provider in logs and metrics.
	ProviderName = string(domain.AuthProviderFacebook)

	// SessionAccessTokenKey is the session key holding the user access
	// token handed over by the JavaScript SDK.
	SessionAccessTokenKey = "fb.accessToken"

	errUserNotRetrieved = "The Facebook user could not be retrieved from the session."
)

// Config wires a Provider.
type Config struct {
	// ProviderKey tags the tokens this provider accepts.
	ProviderKey string
	// UserProvider resolves local accounts. When nil, authentication only
	// proves the Facebook identity.
	UserProvider port.UserProvider
	// UserChecker is required whenever UserProvider is set.
	UserChecker port.UserChecker
	// CreateIfNotExists provisions unknown users. UserProvider must then
	// implement port.UserManager.
	CreateIfNotExists bool
}

// Validate reports inconsistent wiring. Returned errors match
// domain.ErrConfiguration.
func (c Config) Validate() error {
	if c.UserProvider != nil && c.UserChecker == nil {
		return fmt.Errorf("%w: a user checker is required when a user provider is set", domain.ErrConfiguration)
	}
	if c.CreateIfNotExists {
		if _, ok := c.UserProvider.(port.UserManager); !ok {
			return fmt.Errorf("%w: the user provider must be able to create users when CreateIfNotExists is set", domain.ErrConfiguration)
		}
	}
	return nil
}

// Provider exchanges a Facebook session for an authenticated token.
// A Provider wraps a stateful client and serves a single request.
type Provider struct {
	key     string
	client  port.FacebookClient
	users   port.UserProvider
	creator port.UserManager
	checker port.UserChecker
}

// NewProvider validates cfg and returns a Provider bound to client.
func NewProvider(cfg Config, client port.FacebookClient) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Provider{
		key:     cfg.ProviderKey,
		client:  client,
		users:   cfg.UserProvider,
		checker: cfg.UserChecker,
	}
	if cfg.CreateIfNotExists {
		p.creator = cfg.UserProvider.(port.UserManager)
	}
	return p, nil
}

// AppAccessToken returns the app-level token of c, used by the Graph API
// when no user token has been set.
func AppAccessToken(c port.FacebookClient) string {
	return c.AppID() + "|" + c.AppSecret()
}

// RestoreSession installs the access token stored in the session into the
// client, unless the client already holds a user token.
func (p *Provider) RestoreSession(ctx context.Context, store port.SessionStore, sessionID string) error {
	if store == nil || sessionID == "" {
		return nil
	}
	stored, err := store.Get(ctx, sessionID, SessionAccessTokenKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("facebook.RestoreSession: %w", err)
	}
	current := p.client.AccessToken()
	if stored != "" && stored != current && current == AppAccessToken(p.client) {
		p.client.SetAccessToken(stored)
	}
	return nil
}

// Name returns ProviderName.
func (p *Provider) Name() string { return ProviderName }

// Supports reports whether token is a UserToken issued for this provider key.
func (p *Provider) Supports(token auth.Token) bool {
	t, ok := token.(*UserToken)
	return ok && t != nil && t.ProviderKey() == p.key
}

// Authenticate returns (nil, nil) for unsupported tokens.
func (p *Provider) Authenticate(ctx context.Context, token auth.Token) (auth.Token, error) {
	if !p.Supports(token) {
		return nil, nil
	}

	if user := token.User(); user != nil {
		if err := checkPrincipal(user); err != nil {
			return nil, err
		}
		if err := p.checkPostAuth(ctx, user); err != nil {
			return nil, err
		}
		return newAuthenticatedToken(p.key, user, token.Attributes()), nil
	}

	uid, err := p.client.User(ctx)
	if err != nil {
		return nil, auth.WrapAuthentication(err)
	}
	if uid == "" {
		return nil, auth.NewAuthenticationError(errUserNotRetrieved)
	}

	authenticated, err := p.resolve(ctx, uid, token.Attributes())
	if err != nil {
		if errors.Is(err, domain.ErrIntegrity) {
			return nil, err
		}
		return nil, auth.WrapAuthentication(err)
	}
	return authenticated, nil
}

func (p *Provider) resolve(ctx context.Context, uid string, attrs auth.Attributes) (*UserToken, error) {
	if p.users == nil {
		return newUIDToken(p.key, uid, attrs), nil
	}

	user, err := p.users.LoadByFacebookID(ctx, uid)
	switch {
	case err == nil:
		if err := checkPrincipal(user); err != nil {
			return nil, err
		}
		if err := p.checkPostAuth(ctx, user); err != nil {
			return nil, err
		}
	case errors.Is(err, domain.ErrUserNotFound) && p.creator != nil:
		// Freshly created users skip the post-auth check.
		user, err = p.creator.CreateFromFacebookID(ctx, uid)
		if err != nil {
			return nil, err
		}
		if err := checkPrincipal(user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return newAuthenticatedToken(p.key, user, attrs), nil
}

func (p *Provider) checkPostAuth(ctx context.Context, user port.Principal) error {
	if p.checker == nil {
		return nil
	}
	return p.checker.CheckPostAuth(ctx, user)
}

func checkPrincipal(user port.Principal) error {
	if user == nil {
		return fmt.Errorf("%w: user provider returned no user", domain.ErrIntegrity)
	}
	if v := reflect.ValueOf(user); v.Kind() == reflect.Ptr && v.IsNil() {
		return fmt.Errorf("%w: user provider returned a nil %T", domain.ErrIntegrity, user)
	}
	if user.UserIdentifier() == "" {
		return fmt.Errorf("%w: user provider returned a user without identifier", domain.ErrIntegrity)
	}
	return nil
}

var _ auth.Provider = (*Provider)(nil)
