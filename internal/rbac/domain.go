// Package rbac resolves the effective permission set of a principal and
// gates API requests by a permission name derived from the route shape.
package rbac

import (
	"time"

	"github.com/google/uuid"
)

// RoleKind is the coarse role every principal carries exactly one of.
type RoleKind string

const (
	RoleCustomer RoleKind = "customer"
	RoleVendor   RoleKind = "vendor"
	RoleAdmin    RoleKind = "admin"
)

// Role is an administrator-defined bundle of permissions.
type Role struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Permission is a named atomic capability, conventionally "resource.action".
type Permission struct {
	ID          uuid.UUID
	Name        string
	Description string
	DeletedAt   *time.Time
}

// PrincipalAccess is the access snapshot of one principal: the coarse role
// plus the non-deleted permission names of the assigned fine-grained role.
// It is loaded in a single fan-out query per resolution call.
type PrincipalAccess struct {
	PrincipalID uuid.UUID
	Kind        RoleKind
	RoleID      *uuid.UUID
	Permissions []string
}
