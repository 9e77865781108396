package rbac

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/shopvima/shopvima/internal/shared"
)

// AccessStore is the read-only query port the resolver depends on. Both
// methods exclude soft-deleted records.
type AccessStore interface {
	// FindPrincipalAccess loads the principal's access snapshot in one
	// fan-out query. Returns shared.ErrNotFound for unknown or soft-deleted
	// principals.
	FindPrincipalAccess(ctx context.Context, principalID uuid.UUID) (*PrincipalAccess, error)
	// ListPermissionNames returns the full non-deleted permission catalog,
	// ordered by name.
	ListPermissionNames(ctx context.Context) ([]string, error)
}

// Resolver answers permission questions for principals. It is stateless:
// every call reflects the current store contents.
type Resolver struct {
	store AccessStore
}

// NewResolver constructs a Resolver backed by the given store.
func NewResolver(store AccessStore) *Resolver {
	return &Resolver{store: store}
}

// permissionSource is selected once per principal at resolution entry. The
// admin variant satisfies every capability check without enumerating them;
// the role variant answers from the loaded permission set.
type permissionSource interface {
	Has(ctx context.Context, permission string) (bool, error)
	All(ctx context.Context) ([]string, error)
}

type adminAllAccess struct {
	store AccessStore
}

func (adminAllAccess) Has(context.Context, string) (bool, error) {
	return true, nil
}

func (s adminAllAccess) All(ctx context.Context) ([]string, error) {
	return s.store.ListPermissionNames(ctx)
}

type roleBased struct {
	permissions []string
}

func (s roleBased) Has(_ context.Context, permission string) (bool, error) {
	for _, p := range s.permissions {
		if p == permission {
			return true, nil
		}
	}
	return false, nil
}

func (s roleBased) All(context.Context) ([]string, error) {
	out := make([]string, len(s.permissions))
	copy(out, s.permissions)
	sort.Strings(out)
	return out, nil
}

func (r *Resolver) sourceFor(access *PrincipalAccess) permissionSource {
	if access.Kind == RoleAdmin {
		return adminAllAccess{store: r.store}
	}
	return roleBased{permissions: access.Permissions}
}

// HasPermission reports whether the principal holds the named permission.
// Unknown and soft-deleted principals are simply not authorized; only
// infrastructure failures surface as errors.
func (r *Resolver) HasPermission(ctx context.Context, principalID uuid.UUID, permission string) (bool, error) {
	access, err := r.store.FindPrincipalAccess(ctx, principalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return r.sourceFor(access).Has(ctx, permission)
}

// EffectivePermissions returns the principal's permission names, ordered.
// Admins get the whole current catalog, not a frozen subset.
func (r *Resolver) EffectivePermissions(ctx context.Context, principalID uuid.UUID) ([]string, error) {
	access, err := r.store.FindPrincipalAccess(ctx, principalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	return r.sourceFor(access).All(ctx)
}

// HasAnyPermission reports whether the principal holds at least one of the
// given permissions. An empty input is never satisfied. The effective set
// is computed once instead of issuing one lookup per name.
func (r *Resolver) HasAnyPermission(ctx context.Context, principalID uuid.UUID, permissions []string) (bool, error) {
	if len(permissions) == 0 {
		return false, nil
	}
	access, err := r.store.FindPrincipalAccess(ctx, principalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	source := r.sourceFor(access)
	if _, ok := source.(adminAllAccess); ok {
		return true, nil
	}
	granted, err := source.All(ctx)
	if err != nil {
		return false, err
	}
	set := make(map[string]struct{}, len(granted))
	for _, p := range granted {
		set[p] = struct{}{}
	}
	for _, p := range permissions {
		if _, ok := set[p]; ok {
			return true, nil
		}
	}
	return false, nil
}
