package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fbauth/internal/auth"
	"fbauth/internal/config"
	"fbauth/internal/domain"
)

const (
	audienceAccess  = "access"
	audienceRefresh = "refresh"
)

// Claims represents the JWT claims issued after a successful authentication.
type Claims struct {
	jwt.RegisteredClaims
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	FacebookID  string     `json:"facebook_id"`
	Roles       []string   `json:"roles,omitempty"`
	ProviderKey string     `json:"provider_key"`
}

// HasRole reports whether the claims grant role.
func (c *Claims) HasRole(role domain.UserRole) bool {
	for _, r := range c.Roles {
		if r == string(role) {
			return true
		}
	}
	return false
}

// TokenPair holds access and refresh tokens.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// TokenService issues and validates JWTs for authenticated tokens.
type TokenService interface {
	IssueForToken(token auth.Token) (*TokenPair, error)
	ValidateToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

type tokenService struct {
	cfg config.JWTConfig
	now func() time.Time
}

// NewTokenService creates a new TokenService implementation.
func NewTokenService(cfg config.JWTConfig) TokenService {
	return &tokenService{cfg: cfg, now: time.Now}
}

func (s *tokenService) IssueForToken(token auth.Token) (*TokenPair, error) {
	if token == nil || !token.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}

	base := Claims{
		FacebookID:  token.Identifier(),
		Roles:       token.Roles(),
		ProviderKey: token.ProviderKey(),
	}
	subject := token.Identifier()
	if user, ok := token.User().(*domain.User); ok {
		id := user.ID
		base.UserID = &id
		subject = id.String()
	}

	now := s.now()
	accessExpiry := now.Add(s.cfg.AccessTokenExpiry)
	refreshExpiry := now.Add(s.cfg.RefreshTokenExpiry)

	accessToken, err := s.sign(base, subject, audienceAccess, now, accessExpiry)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	refreshToken, err := s.sign(base, subject, audienceRefresh, now, refreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpiry,
	}, nil
}

func (s *tokenService) ValidateToken(tokenString string) (*Claims, error) {
	return s.validateTokenString(tokenString, audienceAccess)
}

func (s *tokenService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validateTokenString(tokenString, audienceRefresh)
}

func (s *tokenService) sign(base Claims, subject, audience string, issuedAt, expiresAt time.Time) (string, error) {
	claims := base
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.New().String(),
		Audience:  jwt.ClaimStrings{audience},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString([]byte(s.cfg.Secret))
}

func (s *tokenService) validateTokenString(tokenString, audience string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithAudience(audience), jwt.WithIssuer(s.cfg.Issuer))
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
