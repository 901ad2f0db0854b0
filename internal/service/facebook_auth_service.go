package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"fbauth/internal/auth"
	"fbauth/internal/auth/facebook"
	"fbauth/internal/domain"
	"fbauth/internal/port"
)

// FacebookLoginInput is the DTO for Facebook login requests. AccessToken is
// the user token obtained by the JavaScript SDK; it may be omitted when the
// session already holds one.
type FacebookLoginInput struct {
	AccessToken string          `json:"access_token"`
	SessionID   string          `json:"-"`
	Attributes  auth.Attributes `json:"-"`
}

// RefreshInput is the DTO for token refresh requests.
type RefreshInput struct {
	RefreshToken string          `json:"refresh_token" binding:"required"`
	SessionID    string          `json:"-"`
	Attributes   auth.Attributes `json:"-"`
}

// LoginOutput contains the results of a successful authentication.
type LoginOutput struct {
	User       *domain.User `json:"user,omitempty"`
	FacebookID string       `json:"facebook_id"`
	Roles      []string     `json:"roles"`
	Tokens     *TokenPair   `json:"tokens"`
}

// FacebookAuthService defines the Facebook authentication contract.
type FacebookAuthService interface {
	Login(ctx context.Context, input FacebookLoginInput) (*LoginOutput, error)
	Refresh(ctx context.Context, input RefreshInput) (*LoginOutput, error)
	Logout(ctx context.Context, sessionID string) error
}

type facebookAuthService struct {
	clients     port.FacebookClientFactory
	sessions    port.SessionStore
	users       port.UserRepository
	providerCfg facebook.Config
	tokens      TokenService
	recorder    auth.AttemptRecorder
	log         *zap.Logger
}

// NewFacebookAuthService creates a new FacebookAuthService. users may be nil
// when authentication only proves the Facebook identity. It fails with
// domain.ErrConfiguration when providerCfg is inconsistent.
func NewFacebookAuthService(
	clients port.FacebookClientFactory,
	sessions port.SessionStore,
	users port.UserRepository,
	providerCfg facebook.Config,
	tokens TokenService,
	recorder auth.AttemptRecorder,
	log *zap.Logger,
) (FacebookAuthService, error) {
	if err := providerCfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &facebookAuthService{
		clients:     clients,
		sessions:    sessions,
		users:       users,
		providerCfg: providerCfg,
		tokens:      tokens,
		recorder:    recorder,
		log:         log.Named("facebook_auth"),
	}, nil
}

func (s *facebookAuthService) Login(ctx context.Context, input FacebookLoginInput) (*LoginOutput, error) {
	client := s.clients.NewClient()
	provider, err := facebook.NewProvider(s.providerCfg, client)
	if err != nil {
		return nil, err
	}

	// 1. Hand the SDK token over to the session, or to the client directly
	//    for sessionless callers.
	if input.AccessToken != "" {
		if input.SessionID != "" {
			if err := s.sessions.Set(ctx, input.SessionID, facebook.SessionAccessTokenKey, input.AccessToken); err != nil {
				return nil, fmt.Errorf("storing session access token: %w", err)
			}
		} else {
			client.SetAccessToken(input.AccessToken)
		}
	}

	// 2. Pick up the session token
	if err := provider.RestoreSession(ctx, s.sessions, input.SessionID); err != nil {
		return nil, err
	}

	// 3. Authenticate
	credential := facebook.NewUserToken(s.providerCfg.ProviderKey, nil, input.Attributes)
	return s.authenticate(ctx, provider, credential)
}

func (s *facebookAuthService) Refresh(ctx context.Context, input RefreshInput) (*LoginOutput, error) {
	claims, err := s.tokens.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.ProviderKey != s.providerCfg.ProviderKey {
		return nil, domain.ErrUnauthorized
	}

	// A known local user is re-authenticated from storage; a bare Facebook
	// identity has to be proven again through the session.
	var user port.Principal
	if claims.UserID != nil && s.users != nil {
		u, err := s.users.GetByID(ctx, *claims.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.ErrUnauthorized
			}
			return nil, fmt.Errorf("loading user for refresh: %w", err)
		}
		user = u
	}

	provider, err := facebook.NewProvider(s.providerCfg, s.clients.NewClient())
	if err != nil {
		return nil, err
	}
	if user == nil {
		if err := provider.RestoreSession(ctx, s.sessions, input.SessionID); err != nil {
			return nil, err
		}
	}

	credential := facebook.NewUserToken(s.providerCfg.ProviderKey, user, input.Attributes)
	out, err := s.authenticate(ctx, provider, credential)
	if err != nil {
		return nil, err
	}
	if out.FacebookID != claims.FacebookID {
		s.log.Warn("refresh token and session identities differ",
			zap.String("token_facebook_id", claims.FacebookID),
			zap.String("session_facebook_id", out.FacebookID),
		)
		return nil, domain.ErrUnauthorized
	}
	return out, nil
}

func (s *facebookAuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *facebookAuthService) authenticate(ctx context.Context, provider auth.Provider, credential auth.Token) (*LoginOutput, error) {
	manager := auth.NewProviderManager(s.log, s.recorder, provider)
	authenticated, err := manager.Authenticate(ctx, credential)
	if err != nil {
		return nil, err
	}

	tokens, err := s.tokens.IssueForToken(authenticated)
	if err != nil {
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	out := &LoginOutput{
		FacebookID: authenticated.Identifier(),
		Roles:      authenticated.Roles(),
		Tokens:     tokens,
	}
	if u, ok := authenticated.User().(*domain.User); ok {
		out.User = u
	}
	return out, nil
}
