// Package users manages principals: accounts with a coarse role and an
// optional fine-grained permission role.
package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopvima/shopvima/internal/rbac"
)

// User represents a principal account for management.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Kind      rbac.RoleKind
	RoleID    *uuid.UUID
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
