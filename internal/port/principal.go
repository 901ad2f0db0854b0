package port

import (
	"context"
	"time"
)

// Principal is an authenticated identity: a unique identifier and a role set.
type Principal interface {
	UserIdentifier() string
	RoleNames() []string
}

// AccountStatus is implemented by principals that can be disabled, locked or
// expired. UserChecker implementations consult it when present.
type AccountStatus interface {
	IsEnabled() bool
	IsLocked(now time.Time) bool
	IsExpired(now time.Time) bool
}

// UserProvider loads local principals by their Facebook UID.
// LoadByFacebookID returns domain.ErrUserNotFound when no user is linked.
type UserProvider interface {
	LoadByFacebookID(ctx context.Context, uid string) (Principal, error)
}

// UserManager is a UserProvider that can also provision principals.
// Providers configured to auto-create users require this capability.
type UserManager interface {
	UserProvider
	CreateFromFacebookID(ctx context.Context, uid string) (Principal, error)
}

// UserChecker applies account policy after a principal has been authenticated.
type UserChecker interface {
	CheckPostAuth(ctx context.Context, p Principal) error
}
