package interfaces

import (
	"context"

	"github.com/cherish-app/cherish/pkg/domain/model"
)

// UserRepository defines the interface for User data access
type UserRepository interface {
	// Create stores a new user. ID must be set by the caller.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id model.UserID) (*model.User, error)

	// Exists reports whether a user with the ID is stored
	Exists(ctx context.Context, id model.UserID) (bool, error)
}
