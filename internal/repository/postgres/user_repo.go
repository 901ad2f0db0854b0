package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"fbauth/internal/domain"
	"fbauth/internal/port"
)

type userRepo struct {
	db           *sqlx.DB
	defaultRoles []string
}

// NewUserRepo creates a new PostgreSQL-backed UserRepository. Users created
// from a Facebook UID receive defaultRoles.
func NewUserRepo(db *sqlx.DB, defaultRoles []string) port.UserRepository {
	return &userRepo{db: db, defaultRoles: defaultRoles}
}

func (r *userRepo) LoadByFacebookID(ctx context.Context, uid string) (port.Principal, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		"SELECT * FROM users WHERE facebook_id = $1", uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("userRepo.LoadByFacebookID: %w", err)
	}
	return &user, nil
}

// CreateFromFacebookID inserts a user for uid. Concurrent first logins for
// the same uid converge on a single row.
func (r *userRepo) CreateFromFacebookID(ctx context.Context, uid string) (port.Principal, error) {
	now := time.Now().UTC()
	roles := pq.StringArray(append([]string(nil), r.defaultRoles...))

	query := `INSERT INTO users (id, facebook_id, email, full_name, roles, is_active, created_at, updated_at)
		VALUES ($1, $2, '', '', $3, true, $4, $4)
		ON CONFLICT (facebook_id) DO UPDATE SET facebook_id = EXCLUDED.facebook_id
		RETURNING *`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, uuid.New(), uid, roles, now); err != nil {
		return nil, fmt.Errorf("userRepo.CreateFromFacebookID: %w", err)
	}
	return &user, nil
}

func (r *userRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		"SELECT * FROM users WHERE id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	query := `UPDATE users SET email = $1, full_name = $2, roles = $3, is_active = $4,
		locked_until = $5, expires_at = $6, updated_at = $7
		WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query,
		user.Email, user.FullName, user.Roles, user.IsActive,
		user.LockedUntil, user.ExpiresAt, user.UpdatedAt, user.ID)
	if err != nil {
		return fmt.Errorf("userRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
