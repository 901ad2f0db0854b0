package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fbauth/internal/service"
)

// MockFacebookAuthService is a mock implementation of service.FacebookAuthService.
type MockFacebookAuthService struct {
	mock.Mock
}

func (m *MockFacebookAuthService) Login(ctx context.Context, input service.FacebookLoginInput) (*service.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginOutput), args.Error(1)
}

func (m *MockFacebookAuthService) Refresh(ctx context.Context, input service.RefreshInput) (*service.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginOutput), args.Error(1)
}

func (m *MockFacebookAuthService) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
