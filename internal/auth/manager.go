package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"fbauth/internal/domain"
)

// AttemptRecorder observes the outcome of each provider attempt.
type AttemptRecorder interface {
	ObserveAttempt(provider, result string)
}

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

// ProviderManager offers a token to each provider in turn.
type ProviderManager struct {
	providers []Provider
	log       *zap.Logger
	recorder  AttemptRecorder
}

// NewProviderManager creates a ProviderManager. log and recorder may be nil.
func NewProviderManager(log *zap.Logger, recorder AttemptRecorder, providers ...Provider) *ProviderManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProviderManager{providers: providers, log: log, recorder: recorder}
}

// Authenticate returns the token produced by the first provider that accepts
// the credential. Providers that do not support the token are skipped. A
// plain authentication failure moves on to the next provider and is
// returned if no later provider succeeds. Account status errors,
// ErrIntegrity and errors outside the authentication family stop the chain.
// ErrProviderNotFound is returned when every provider skipped.
func (m *ProviderManager) Authenticate(ctx context.Context, token Token) (Token, error) {
	var lastErr error
	for _, p := range m.providers {
		result, err := p.Authenticate(ctx, token)
		if err != nil {
			m.observe(p.Name(), ResultFailure)
			m.log.Debug("authentication failed",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			if stopsChain(err) {
				return nil, err
			}
			lastErr = err
			continue
		}
		if result == nil {
			m.observe(p.Name(), ResultSkipped)
			continue
		}
		m.observe(p.Name(), ResultSuccess)
		m.log.Debug("authentication succeeded",
			zap.String("provider", p.Name()),
			zap.String("provider_key", result.ProviderKey()),
		)
		return result, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrProviderNotFound
}

func stopsChain(err error) bool {
	switch {
	case errors.Is(err, domain.ErrUserDisabled),
		errors.Is(err, domain.ErrUserLocked),
		errors.Is(err, domain.ErrAccountExpired),
		errors.Is(err, domain.ErrIntegrity):
		return true
	}
	return !errors.Is(err, domain.ErrAuthentication)
}

func (m *ProviderManager) observe(provider, result string) {
	if m.recorder != nil {
		m.recorder.ObserveAttempt(provider, result)
	}
}
