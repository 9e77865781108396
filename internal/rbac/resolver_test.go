package rbac

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopvima/shopvima/internal/shared"
)

type mockStore struct {
	access  map[uuid.UUID]*PrincipalAccess
	catalog []string

	findErr error
	listErr error
}

func newMockStore() *mockStore {
	return &mockStore{access: make(map[uuid.UUID]*PrincipalAccess)}
}

func (m *mockStore) FindPrincipalAccess(_ context.Context, id uuid.UUID) (*PrincipalAccess, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	access, ok := m.access[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return access, nil
}

func (m *mockStore) ListPermissionNames(context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.catalog, nil
}

func (m *mockStore) addPrincipal(kind RoleKind, perms ...string) uuid.UUID {
	id := uuid.New()
	m.access[id] = &PrincipalAccess{PrincipalID: id, Kind: kind, Permissions: perms}
	return id
}

func TestHasPermissionAdminBypass(t *testing.T) {
	store := newMockStore()
	admin := store.addPrincipal(RoleAdmin)
	resolver := NewResolver(store)

	for _, name := range []string{"products.update", "anything.random", "not-even-a-convention-name"} {
		ok, err := resolver.HasPermission(context.Background(), admin, name)
		require.NoError(t, err)
		assert.True(t, ok, "admin must hold %q", name)
	}
}

func TestHasPermissionRoleBased(t *testing.T) {
	store := newMockStore()
	vendor := store.addPrincipal(RoleVendor, "products.view", "products.update")
	resolver := NewResolver(store)

	ok, err := resolver.HasPermission(context.Background(), vendor, "products.update")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = resolver.HasPermission(context.Background(), vendor, "products.delete")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasPermissionUnknownPrincipal(t *testing.T) {
	resolver := NewResolver(newMockStore())

	ok, err := resolver.HasPermission(context.Background(), uuid.New(), "products.view")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasPermissionStoreFailure(t *testing.T) {
	store := newMockStore()
	store.findErr = errors.New("connection refused")
	resolver := NewResolver(store)

	_, err := resolver.HasPermission(context.Background(), uuid.New(), "products.view")
	assert.Error(t, err)
}

func TestEffectivePermissionsAdminReflectsCatalog(t *testing.T) {
	store := newMockStore()
	store.catalog = []string{"brands.view", "products.update", "products.view"}
	admin := store.addPrincipal(RoleAdmin)
	resolver := NewResolver(store)

	perms, err := resolver.EffectivePermissions(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, store.catalog, perms)

	// The admin set tracks the live catalog, not a snapshot.
	store.catalog = append(store.catalog, "coupons.view")
	perms, err = resolver.EffectivePermissions(context.Background(), admin)
	require.NoError(t, err)
	assert.Contains(t, perms, "coupons.view")
}

func TestEffectivePermissionsRoleAndEmpty(t *testing.T) {
	store := newMockStore()
	vendor := store.addPrincipal(RoleVendor, "products.view", "brands.view")
	customer := store.addPrincipal(RoleCustomer)
	resolver := NewResolver(store)

	perms, err := resolver.EffectivePermissions(context.Background(), vendor)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"products.view", "brands.view"}, perms)

	perms, err = resolver.EffectivePermissions(context.Background(), customer)
	require.NoError(t, err)
	assert.Empty(t, perms)

	perms, err = resolver.EffectivePermissions(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, perms)
}

func TestHasAnyPermission(t *testing.T) {
	store := newMockStore()
	vendor := store.addPrincipal(RoleVendor, "products.view")
	admin := store.addPrincipal(RoleAdmin)
	resolver := NewResolver(store)

	ok, err := resolver.HasAnyPermission(context.Background(), vendor, nil)
	require.NoError(t, err)
	assert.False(t, ok, "empty input is never satisfied")

	ok, err = resolver.HasAnyPermission(context.Background(), admin, []string{})
	require.NoError(t, err)
	assert.False(t, ok, "empty input is never satisfied even for admins")

	ok, err = resolver.HasAnyPermission(context.Background(), vendor, []string{"brands.view", "products.view"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = resolver.HasAnyPermission(context.Background(), vendor, []string{"brands.view", "brands.update"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = resolver.HasAnyPermission(context.Background(), admin, []string{"whatever.goes"})
	require.NoError(t, err)
	assert.True(t, ok)
}
