package repository

import (
	"context"

	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Create reports ErrDuplicate when either username or apiKey is taken;
// ErrAPIKeyTaken narrows it to the apiKey index.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByAPIKey(ctx context.Context, key string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
}
