package users

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopvima/shopvima/internal/auth/password"
	"github.com/shopvima/shopvima/internal/rbac"
)

type stubUserRepo struct {
	created      User
	createdHash  string
	listLimit    int
	listOffset   int
}

func (s *stubUserRepo) ListUsers(_ context.Context, limit, offset int) ([]User, int, error) {
	s.listLimit = limit
	s.listOffset = offset
	return nil, 0, nil
}

func (s *stubUserRepo) GetUser(context.Context, uuid.UUID) (User, error) { return User{}, nil }

func (s *stubUserRepo) CreateUser(_ context.Context, user User, passwordHash string) (User, error) {
	s.created = user
	s.createdHash = passwordHash
	return user, nil
}

func (s *stubUserRepo) UpdateUser(_ context.Context, user User) (User, error) { return user, nil }

func (s *stubUserRepo) SoftDeleteUser(context.Context, uuid.UUID) error { return nil }

func TestCreateUserHashesAndNormalizes(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewService(repo, nil)

	created, err := svc.CreateUser(context.Background(), User{
		Email: "  New.Vendor@Example.COM ",
		Name:  "New Vendor",
		Kind:  rbac.RoleVendor,
	}, "plaintext-pass")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "new.vendor@example.com", repo.created.Email)
	assert.True(t, strings.HasPrefix(repo.createdHash, "PBKDF2$"))
	assert.Equal(t, password.Success, password.Verify("plaintext-pass", repo.createdHash))
}

func TestCreateUserDefaultsToCustomer(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewService(repo, nil)

	_, err := svc.CreateUser(context.Background(), User{Email: "a@b.test", Name: "A"}, "plaintext-pass")
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleCustomer, repo.created.Kind)
}

func TestKindFromString(t *testing.T) {
	assert.Equal(t, rbac.RoleAdmin, kindFromString("admin"))
	assert.Equal(t, rbac.RoleVendor, kindFromString("vendor"))
	assert.Equal(t, rbac.RoleCustomer, kindFromString("customer"))
	assert.Equal(t, rbac.RoleCustomer, kindFromString(""))
	assert.Equal(t, rbac.RoleCustomer, kindFromString("superuser"))
}

func TestListUsersClampsPageSize(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewService(repo, nil)

	_, _, err := svc.ListUsers(context.Background(), 10_000, -5)
	require.NoError(t, err)
	assert.Equal(t, 20, repo.listLimit)
	assert.Equal(t, 0, repo.listOffset)
}
