package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User represents a local account linked to a Facebook identity.
type User struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	FacebookID  string         `db:"facebook_id" json:"facebook_id"`
	Email       string         `db:"email" json:"email"`
	FullName    string         `db:"full_name" json:"full_name"`
	Roles       pq.StringArray `db:"roles" json:"roles"`
	IsActive    bool           `db:"is_active" json:"is_active"`
	LockedUntil *time.Time     `db:"locked_until" json:"locked_until,omitempty"`
	ExpiresAt   *time.Time     `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// UserIdentifier returns the Facebook UID the account is keyed by.
func (u *User) UserIdentifier() string {
	return u.FacebookID
}

// RoleNames returns a copy of the user's roles.
func (u *User) RoleNames() []string {
	roles := make([]string, len(u.Roles))
	copy(roles, u.Roles)
	return roles
}

// HasRole reports whether the user has been granted role.
func (u *User) HasRole(role UserRole) bool {
	for _, r := range u.Roles {
		if r == string(role) {
			return true
		}
	}
	return false
}

func (u *User) IsEnabled() bool {
	return u.IsActive
}

func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

func (u *User) IsExpired(now time.Time) bool {
	return u.ExpiresAt != nil && !now.Before(*u.ExpiresAt)
}
