package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopvima/shopvima/internal/platform/db"
	"github.com/shopvima/shopvima/internal/shared"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, email, name, role_kind, role_id, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var user User
	var kind string
	err := row.Scan(&user.ID, &user.Email, &user.Name, &kind, &user.RoleID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	user.Kind = kindFromString(kind)
	return user, nil
}

// ListUsers returns a page of non-deleted users ordered by email.
func (r *Repository) ListUsers(ctx context.Context, limit, offset int) ([]User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE deleted_at IS NULL ORDER BY email LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	return users, total, rows.Err()
}

// GetUser fetches a non-deleted user by ID.
func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// CreateUser inserts a new user with its hashed credential.
func (r *Repository) CreateUser(ctx context.Context, user User, passwordHash string) (User, error) {
	created, err := scanUser(r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, name, password_hash, role_kind, role_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING `+userColumns,
		user.ID, user.Email, user.Name, passwordHash, string(user.Kind), user.RoleID, user.IsActive))
	if err != nil {
		return User{}, db.MapUniqueViolation(err)
	}
	return created, nil
}

// UpdateUser updates profile, coarse role, fine role and active flag.
func (r *Repository) UpdateUser(ctx context.Context, user User) (User, error) {
	updated, err := scanUser(r.pool.QueryRow(ctx, `
		UPDATE users SET name = $2, role_kind = $3, role_id = $4, is_active = $5, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+userColumns,
		user.ID, user.Name, string(user.Kind), user.RoleID, user.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	return updated, nil
}

// SoftDeleteUser marks a user deleted; it disappears from permission
// resolution immediately.
func (r *Repository) SoftDeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
