package domain

// UserRole is a role granted to a local user.
type UserRole string

const (
	RoleUser  UserRole = "ROLE_USER"
	RoleAdmin UserRole = "ROLE_ADMIN"
)

// AuthProvider identifies the identity provider a user signed in with.
type AuthProvider string

const (
	AuthProviderFacebook AuthProvider = "facebook"
)
