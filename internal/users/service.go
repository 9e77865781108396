package users

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shopvima/shopvima/internal/auth/password"
	"github.com/shopvima/shopvima/internal/rbac"
	"github.com/shopvima/shopvima/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context, limit, offset int) ([]User, int, error)
	GetUser(ctx context.Context, id uuid.UUID) (User, error)
	CreateUser(ctx context.Context, user User, passwordHash string) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	SoftDeleteUser(ctx context.Context, id uuid.UUID) error
}

// AuditPort records account lifecycle events.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service handles user business logic.
type Service struct {
	repo  RepositoryPort
	audit AuditPort
}

// NewService builds Service instance. audit may be nil.
func NewService(repo RepositoryPort, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit}
}

// recordAudit is best effort; account changes must not fail on audit errors.
func (s *Service) recordAudit(ctx context.Context, action string, entityID uuid.UUID) {
	if s.audit == nil {
		return
	}
	actor := uuid.Nil
	if sess := shared.SessionFromContext(ctx); sess != nil {
		actor = sess.Principal()
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actor,
		Action:   action,
		Entity:   "user",
		EntityID: entityID.String(),
	})
}

// ListUsers returns a page of users plus the total count.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]User, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListUsers(ctx, limit, offset)
}

// GetUser fetches a user by ID.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetUser(ctx, id)
}

// CreateUser hashes the plaintext and stores the new user.
func (s *Service) CreateUser(ctx context.Context, user User, plaintext string) (User, error) {
	user.ID = uuid.New()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Kind == "" {
		user.Kind = rbac.RoleCustomer
	}
	created, err := s.repo.CreateUser(ctx, user, password.Hash(plaintext))
	if err != nil {
		return User{}, err
	}
	s.recordAudit(ctx, "user.created", created.ID)
	return created, nil
}

// UpdateUser applies profile and role changes.
func (s *Service) UpdateUser(ctx context.Context, user User) (User, error) {
	return s.repo.UpdateUser(ctx, user)
}

// DeleteUser soft-deletes the user.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDeleteUser(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, "user.deleted", id)
	return nil
}

// kindFromString maps a request payload kind onto the closed role
// enumeration, defaulting unknown or empty values to customer.
func kindFromString(kind string) rbac.RoleKind {
	switch rbac.RoleKind(kind) {
	case rbac.RoleAdmin:
		return rbac.RoleAdmin
	case rbac.RoleVendor:
		return rbac.RoleVendor
	default:
		return rbac.RoleCustomer
	}
}
