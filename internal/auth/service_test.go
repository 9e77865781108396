package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopvima/shopvima/internal/auth/password"
	"github.com/shopvima/shopvima/internal/shared"
)

type stubRepo struct {
	account   *Account
	updateErr error

	updatedHash string
}

func (s *stubRepo) FindByEmail(_ context.Context, email string) (*Account, error) {
	if s.account == nil || s.account.Email != email {
		return nil, shared.ErrNotFound
	}
	clone := *s.account
	return &clone, nil
}

func (s *stubRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedHash = hash
	s.account.PasswordHash = hash
	return nil
}

func (s *stubRepo) CreateSession(context.Context, string, uuid.UUID, time.Time, string, string) error {
	return nil
}

func (s *stubRepo) DeleteSession(context.Context, string) error {
	return nil
}

func (s *stubRepo) DeleteExpiredSessions(context.Context) (int64, error) {
	return 0, nil
}

func activeAccount(hash string) *Account {
	return &Account{ID: uuid.New(), Email: "admin@shopvima.test", PasswordHash: hash, IsActive: true}
}

func legacyHash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func TestAuthenticateSuccess(t *testing.T) {
	repo := &stubRepo{account: activeAccount(password.Hash("s3cret-pass"))}
	service := NewService(repo, nil)

	account, err := service.Authenticate(context.Background(), "admin@shopvima.test", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, repo.account.ID, account.ID)
	assert.Empty(t, repo.updatedHash, "no rehash for current-format credentials")
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := &stubRepo{account: activeAccount(password.Hash("s3cret-pass"))}
	service := NewService(repo, nil)

	_, err := service.Authenticate(context.Background(), "admin@shopvima.test", "wrong")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	service := NewService(&stubRepo{}, nil)

	_, err := service.Authenticate(context.Background(), "nobody@shopvima.test", "whatever")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	account := activeAccount(password.Hash("s3cret-pass"))
	account.IsActive = false
	service := NewService(&stubRepo{account: account}, nil)

	_, err := service.Authenticate(context.Background(), "admin@shopvima.test", "s3cret-pass")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateUpgradesLegacyCredential(t *testing.T) {
	repo := &stubRepo{account: activeAccount(legacyHash("old-pass"))}
	service := NewService(repo, nil)

	account, err := service.Authenticate(context.Background(), "admin@shopvima.test", "old-pass")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(repo.updatedHash, "PBKDF2$"), "credential must be upgraded in place")
	assert.Equal(t, repo.updatedHash, account.PasswordHash)
	assert.Equal(t, password.Success, password.Verify("old-pass", repo.updatedHash))

	// Second login verifies against the upgraded credential without another rehash.
	repo.updatedHash = ""
	_, err = service.Authenticate(context.Background(), "admin@shopvima.test", "old-pass")
	require.NoError(t, err)
	assert.Empty(t, repo.updatedHash)
}

func TestAuthenticateLegacyUpgradePersistFailure(t *testing.T) {
	repo := &stubRepo{
		account:   activeAccount(legacyHash("old-pass")),
		updateErr: errors.New("connection reset"),
	}
	service := NewService(repo, nil)

	// Login still succeeds; the upgrade is opportunistic.
	account, err := service.Authenticate(context.Background(), "admin@shopvima.test", "old-pass")
	require.NoError(t, err)
	assert.Equal(t, legacyHash("old-pass"), account.PasswordHash)
}
