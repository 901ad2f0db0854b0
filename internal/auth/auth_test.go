package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fbauth/internal/auth"
	"fbauth/internal/domain"
	"fbauth/internal/port"
)

type mockProvider struct {
	mock.Mock
	name string
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Supports(token auth.Token) bool {
	return m.Called(token).Bool(0)
}

func (m *mockProvider) Authenticate(ctx context.Context, token auth.Token) (auth.Token, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(auth.Token), args.Error(1)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) ObserveAttempt(provider, result string) {
	m.Called(provider, result)
}

type stubToken struct {
	key           string
	authenticated bool
}

func (t stubToken) ProviderKey() string         { return t.key }
func (t stubToken) Identifier() string          { return "100" }
func (t stubToken) User() port.Principal        { return nil }
func (t stubToken) Roles() []string             { return nil }
func (t stubToken) Attributes() auth.Attributes { return nil }
func (t stubToken) IsAuthenticated() bool       { return t.authenticated }

func TestProviderManager_FirstSupportingProviderWins(t *testing.T) {
	credential := stubToken{key: "main"}
	authenticated := stubToken{key: "main", authenticated: true}

	skipping := &mockProvider{name: "skipping"}
	accepting := &mockProvider{name: "accepting"}
	unused := &mockProvider{name: "unused"}
	recorder := new(mockRecorder)

	skipping.On("Authenticate", mock.Anything, credential).Return(nil, nil)
	accepting.On("Authenticate", mock.Anything, credential).Return(authenticated, nil)
	recorder.On("ObserveAttempt", "skipping", auth.ResultSkipped).Once()
	recorder.On("ObserveAttempt", "accepting", auth.ResultSuccess).Once()

	m := auth.NewProviderManager(nil, recorder, skipping, accepting, unused)
	result, err := m.Authenticate(context.Background(), credential)

	require.NoError(t, err)
	assert.Equal(t, authenticated, result)
	unused.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	recorder.AssertExpectations(t)
}

func TestProviderManager_ErrorStopsChain(t *testing.T) {
	credential := stubToken{key: "main"}
	failing := &mockProvider{name: "failing"}
	next := &mockProvider{name: "next"}
	recorder := new(mockRecorder)

	failing.On("Authenticate", mock.Anything, credential).Return(nil, domain.ErrUserDisabled)
	recorder.On("ObserveAttempt", "failing", auth.ResultFailure).Once()

	m := auth.NewProviderManager(nil, recorder, failing, next)
	result, err := m.Authenticate(context.Background(), credential)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUserDisabled)
	next.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	recorder.AssertExpectations(t)
}

func TestProviderManager_AuthenticationFailureFallsBack(t *testing.T) {
	credential := stubToken{key: "main"}
	authenticated := stubToken{key: "main", authenticated: true}

	failing := &mockProvider{name: "failing"}
	accepting := &mockProvider{name: "accepting"}
	recorder := new(mockRecorder)

	failing.On("Authenticate", mock.Anything, credential).
		Return(nil, auth.NewAuthenticationError("The Facebook user could not be retrieved from the session."))
	accepting.On("Authenticate", mock.Anything, credential).Return(authenticated, nil)
	recorder.On("ObserveAttempt", "failing", auth.ResultFailure).Once()
	recorder.On("ObserveAttempt", "accepting", auth.ResultSuccess).Once()

	m := auth.NewProviderManager(nil, recorder, failing, accepting)
	result, err := m.Authenticate(context.Background(), credential)

	require.NoError(t, err)
	assert.Equal(t, authenticated, result)
	recorder.AssertExpectations(t)
}

func TestProviderManager_ReturnsLastAuthenticationFailure(t *testing.T) {
	credential := stubToken{key: "main"}
	first := &mockProvider{name: "first"}
	second := &mockProvider{name: "second"}
	skipping := &mockProvider{name: "skipping"}
	secondErr := auth.NewAuthenticationError("second")

	first.On("Authenticate", mock.Anything, credential).Return(nil, domain.ErrUserNotFound)
	second.On("Authenticate", mock.Anything, credential).Return(nil, secondErr)
	skipping.On("Authenticate", mock.Anything, credential).Return(nil, nil)

	m := auth.NewProviderManager(nil, nil, first, second, skipping)
	result, err := m.Authenticate(context.Background(), credential)

	assert.Nil(t, result)
	assert.Same(t, secondErr, err)
	skipping.AssertCalled(t, "Authenticate", mock.Anything, credential)
}

func TestProviderManager_StoppingErrors(t *testing.T) {
	for _, stop := range []error{
		domain.ErrUserLocked,
		domain.ErrAccountExpired,
		domain.ErrIntegrity,
		errors.New("database unavailable"),
	} {
		t.Run(stop.Error(), func(t *testing.T) {
			credential := stubToken{key: "main"}
			failing := &mockProvider{name: "failing"}
			next := &mockProvider{name: "next"}
			failing.On("Authenticate", mock.Anything, credential).Return(nil, stop)

			m := auth.NewProviderManager(nil, nil, failing, next)
			_, err := m.Authenticate(context.Background(), credential)

			assert.ErrorIs(t, err, stop)
			next.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
		})
	}
}

func TestProviderManager_NoProviderSupportsToken(t *testing.T) {
	credential := stubToken{key: "main"}
	skipping := &mockProvider{name: "skipping"}
	skipping.On("Authenticate", mock.Anything, credential).Return(nil, nil)

	m := auth.NewProviderManager(nil, nil, skipping)
	result, err := m.Authenticate(context.Background(), credential)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, auth.ErrProviderNotFound)
	assert.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestUserChecker(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	checker := auth.NewUserCheckerWithClock(func() time.Time { return now })

	tests := []struct {
		name    string
		user    port.Principal
		wantErr error
	}{
		{"active user", &domain.User{FacebookID: "1", IsActive: true}, nil},
		{"disabled user", &domain.User{FacebookID: "1", IsActive: false}, domain.ErrUserDisabled},
		{"locked user", &domain.User{FacebookID: "1", IsActive: true, LockedUntil: &future}, domain.ErrUserLocked},
		{"lock elapsed", &domain.User{FacebookID: "1", IsActive: true, LockedUntil: &past}, nil},
		{"expired account", &domain.User{FacebookID: "1", IsActive: true, ExpiresAt: &past}, domain.ErrAccountExpired},
		{"expires later", &domain.User{FacebookID: "1", IsActive: true, ExpiresAt: &future}, nil},
		{"principal without status", stubPrincipal{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checker.CheckPostAuth(context.Background(), tt.user)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrAuthentication)
		})
	}
}

type stubPrincipal struct{}

func (stubPrincipal) UserIdentifier() string { return "1" }
func (stubPrincipal) RoleNames() []string    { return nil }

func TestAuthenticationError(t *testing.T) {
	cause := errors.New("boom")
	err := &auth.AuthenticationError{Message: "login failed", Err: cause}

	assert.EqualError(t, err, "login failed")
	assert.ErrorIs(t, err, domain.ErrAuthentication)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrIntegrity)

	assert.EqualError(t, &auth.AuthenticationError{Err: cause}, "boom")
}

func TestWrapAuthentication(t *testing.T) {
	assert.NoError(t, auth.WrapAuthentication(nil))

	// Errors already in the family are returned unchanged.
	assert.Same(t, domain.ErrUserLocked, auth.WrapAuthentication(domain.ErrUserLocked))
	original := auth.NewAuthenticationError("nope")
	assert.Same(t, original, auth.WrapAuthentication(original))

	cause := errors.New("timeout")
	wrapped := auth.WrapAuthentication(cause)
	var authErr *auth.AuthenticationError
	require.ErrorAs(t, wrapped, &authErr)
	assert.Equal(t, "timeout", authErr.Message)
	assert.Same(t, cause, authErr.Err)
}

func TestAttributesClone(t *testing.T) {
	var empty auth.Attributes
	assert.Nil(t, empty.Clone())

	attrs := auth.Attributes{"a": 1}
	clone := attrs.Clone()
	clone["b"] = 2
	assert.NotContains(t, attrs, "b")
}
