package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fbauth/internal/port"
)

// MockUserProvider is a mock implementation of port.UserProvider without
// the ability to create users.
type MockUserProvider struct {
	mock.Mock
}

func (m *MockUserProvider) LoadByFacebookID(ctx context.Context, uid string) (port.Principal, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.Principal), args.Error(1)
}

// MockUserChecker is a mock implementation of port.UserChecker.
type MockUserChecker struct {
	mock.Mock
}

func (m *MockUserChecker) CheckPostAuth(ctx context.Context, p port.Principal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
