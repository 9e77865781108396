package auth

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a principal's credential record.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
