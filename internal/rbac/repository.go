package rbac

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopvima/shopvima/internal/platform/db"
	"github.com/shopvima/shopvima/internal/shared"
)

// PGRepository implements AccessStore plus the role/permission management
// queries on PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

var _ AccessStore = (*PGRepository)(nil)

// FindPrincipalAccess loads the principal's coarse role and the non-deleted
// permission names of its assigned role in one round trip.
func (r *PGRepository) FindPrincipalAccess(ctx context.Context, principalID uuid.UUID) (*PrincipalAccess, error) {
	const query = `
		SELECT u.id, u.role_kind, u.role_id,
		       COALESCE(array_agg(p.name ORDER BY p.name)
		                FILTER (WHERE p.id IS NOT NULL AND p.deleted_at IS NULL), '{}')
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id AND r.deleted_at IS NULL
		LEFT JOIN role_permissions rp ON rp.role_id = r.id
		LEFT JOIN permissions p ON p.id = rp.permission_id
		WHERE u.id = $1 AND u.deleted_at IS NULL
		GROUP BY u.id, u.role_kind, u.role_id`

	var access PrincipalAccess
	var kind string
	err := r.pool.QueryRow(ctx, query, principalID).Scan(&access.PrincipalID, &kind, &access.RoleID, &access.Permissions)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	access.Kind = RoleKind(kind)
	return &access, nil
}

// ListPermissionNames returns the names of all non-deleted permissions.
func (r *PGRepository) ListPermissionNames(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT name FROM permissions WHERE deleted_at IS NULL ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ListRoles returns all non-deleted roles ordered by name.
func (r *PGRepository) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM roles WHERE deleted_at IS NULL ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// CreateRole inserts a new role.
func (r *PGRepository) CreateRole(ctx context.Context, name, description string) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx, `
		INSERT INTO roles (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, name, description, created_at, updated_at`,
		uuid.New(), name, description,
	).Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return Role{}, db.MapUniqueViolation(err)
	}
	return role, nil
}

// UpdateRole updates a non-deleted role.
func (r *PGRepository) UpdateRole(ctx context.Context, id uuid.UUID, name, description string) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx, `
		UPDATE roles SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id, name, description, created_at, updated_at`,
		id, name, description,
	).Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, shared.ErrNotFound
		}
		return Role{}, db.MapUniqueViolation(err)
	}
	return role, nil
}

// SoftDeleteRole marks a role deleted without removing its assignments.
func (r *PGRepository) SoftDeleteRole(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE roles SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetRolePermissions replaces the permission set of a role atomically.
func (r *PGRepository) SetRolePermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
			return err
		}
		for _, pid := range permissionIDs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO role_permissions (role_id, permission_id, created_at)
				VALUES ($1, $2, NOW()) ON CONFLICT DO NOTHING`, roleID, pid); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListPermissions returns all non-deleted permissions ordered by name.
func (r *PGRepository) ListPermissions(ctx context.Context) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description FROM permissions
		WHERE deleted_at IS NULL ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []Permission
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// EnsurePermission upserts a permission by name, reviving it when it was
// soft-deleted. Used by the seeding path.
func (r *PGRepository) EnsurePermission(ctx context.Context, name, description string) (Permission, error) {
	var p Permission
	err := r.pool.QueryRow(ctx, `
		INSERT INTO permissions (id, name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, deleted_at = NULL
		RETURNING id, name, description`,
		uuid.New(), strings.TrimSpace(name), strings.TrimSpace(description),
	).Scan(&p.ID, &p.Name, &p.Description)
	if err != nil {
		return Permission{}, err
	}
	return p, nil
}

// SoftDeletePermission marks a permission deleted; it vanishes from every
// resolution result while role assignments stay in place.
func (r *PGRepository) SoftDeletePermission(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE permissions SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
