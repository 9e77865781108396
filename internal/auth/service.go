package auth

import (
	"context"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/shopvima/shopvima/internal/auth/password"
	"github.com/shopvima/shopvima/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Authenticate validates email/password credentials. When the stored
// credential is in the legacy format and the password matches, it is
// re-hashed and persisted so the account migrates without a separate pass;
// a failed persist does not fail the login.
func (s *Service) Authenticate(ctx context.Context, email, plaintext string) (*Account, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !account.IsActive {
		return nil, shared.ErrInvalidCredentials
	}

	switch password.Verify(plaintext, account.PasswordHash) {
	case password.Success:
		return account, nil
	case password.SuccessRehashNeeded:
		upgraded := password.Hash(plaintext)
		if err := s.repo.UpdatePasswordHash(ctx, account.ID, upgraded); err != nil {
			if s.logger != nil {
				s.logger.Warn("upgrade legacy credential", slog.String("account", account.ID.String()), slog.Any("error", err))
			}
		} else {
			account.PasswordHash = upgraded
		}
		return account, nil
	default:
		return nil, shared.ErrInvalidCredentials
	}
}

// RegisterSession persists the session metadata for auditing.
func (s *Service) RegisterSession(ctx context.Context, id string, principalID uuid.UUID, expiresAt time.Time, ip, ua string) error {
	return s.repo.CreateSession(ctx, id, principalID, expiresAt, ip, ua)
}

// RemoveSession deletes a session audit record.
func (s *Service) RemoveSession(ctx context.Context, id string) error {
	return s.repo.DeleteSession(ctx, id)
}
