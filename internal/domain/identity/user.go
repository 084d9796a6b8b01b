// Package identity holds the minimal user model the partner integration
// reads: the order owner looked up by the order's stored user id.
package identity

import (
	"context"

	"github.com/coregenion/holo-gateway/internal/domain/shared"
	"github.com/google/uuid"
)

// User is a shop customer account.
type User struct {
	shared.BaseEntity
	Email string `gorm:"type:varchar(255);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// UserRepository defines user lookups.
type UserRepository interface {
	// FindByID returns the user with the given ID, or shared.ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}
