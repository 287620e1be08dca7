package repository

import (
	"context"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
)

// UserRepository stores and retrieves user accounts.
type UserRepository interface {
	// FindByID returns the user with the given ID, or ErrUserNotFound.
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// FindByUsername returns the user with the given username, or
	// ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// Save creates the user if it has no ID yet, otherwise updates it.
	Save(ctx context.Context, user *domain.User) error
}
