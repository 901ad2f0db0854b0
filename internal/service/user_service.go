package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fbauth/internal/domain"
	"fbauth/internal/port"
)

// UpdateUserInput is the DTO for updating a user. Nil fields are left as is.
type UpdateUserInput struct {
	Email       *string    `json:"email"`
	FullName    *string    `json:"full_name"`
	Roles       []string   `json:"roles"`
	IsActive    *bool      `json:"is_active"`
	LockedUntil *time.Time `json:"locked_until"`
	ExpiresAt   *time.Time `json:"expires_at"`
	Unlock      bool       `json:"unlock"`
}

// UserService defines the user management contract.
type UserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error)
}

type userService struct {
	repo port.UserRepository
}

// NewUserService creates a new UserService implementation.
func NewUserService(repo port.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *userService) Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Roles != nil {
		user.Roles = input.Roles
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.LockedUntil != nil {
		user.LockedUntil = input.LockedUntil
	}
	if input.Unlock {
		user.LockedUntil = nil
	}
	if input.ExpiresAt != nil {
		user.ExpiresAt = input.ExpiresAt
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
