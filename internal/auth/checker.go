package auth

import (
	"context"
	"time"

	"fbauth/internal/domain"
	"fbauth/internal/port"
)

type userChecker struct {
	now func() time.Time
}

// NewUserChecker returns the default post-authentication account checker.
// Principals that do not implement port.AccountStatus always pass.
func NewUserChecker() port.UserChecker {
	return &userChecker{now: time.Now}
}

// NewUserCheckerWithClock is NewUserChecker with an injected clock.
func NewUserCheckerWithClock(now func() time.Time) port.UserChecker {
	return &userChecker{now: now}
}

func (c *userChecker) CheckPostAuth(_ context.Context, p port.Principal) error {
	status, ok := p.(port.AccountStatus)
	if !ok {
		return nil
	}
	now := c.now()
	switch {
	case !status.IsEnabled():
		return domain.ErrUserDisabled
	case status.IsLocked(now):
		return domain.ErrUserLocked
	case status.IsExpired(now):
		return domain.ErrAccountExpired
	}
	return nil
}
