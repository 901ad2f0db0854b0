package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fbauth/internal/port"
)

// MockFacebookClient is a mock implementation of port.FacebookClient.
type MockFacebookClient struct {
	mock.Mock
}

func (m *MockFacebookClient) AccessToken() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockFacebookClient) SetAccessToken(token string) {
	m.Called(token)
}

func (m *MockFacebookClient) AppID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockFacebookClient) AppSecret() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockFacebookClient) User(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockFacebookClientFactory is a mock implementation of port.FacebookClientFactory.
type MockFacebookClientFactory struct {
	mock.Mock
}

func (m *MockFacebookClientFactory) NewClient() port.FacebookClient {
	args := m.Called()
	return args.Get(0).(port.FacebookClient)
}
