package http

import (
	"context"

	"github.com/Vishal-43/img-craft/internal/domain"
)

// UserRepository is the minimal interface the router requires from a user store.
// The memory, dynamo and postgres UserRepo types all satisfy it.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}
