package port

import (
	"context"

	"github.com/google/uuid"

	"fbauth/internal/domain"
)

// UserRepository defines the contract for user persistence. It doubles as
// the user provider (with creation capability) of the Facebook provider.
type UserRepository interface {
	UserManager
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
