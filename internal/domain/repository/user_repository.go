package repository

import (
	"context"

	"github.com/samersoltani/dewini-server/internal/domain/entity"
)

// UserRepository defines the record-store operations for users.
// GetByID and GetByEmail return (nil, nil) when no user matches; errors
// are reserved for store failures.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
}
