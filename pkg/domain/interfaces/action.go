package interfaces

import (
	"context"

	"github.com/cherish-app/cherish/pkg/domain/model"
)

// ActionRepository defines the interface for Action data access
type ActionRepository interface {
	// Create stores a new action. ID must be set by the caller; timestamps are
	// assigned by the repository.
	Create(ctx context.Context, action *model.Action) (*model.Action, error)

	// Get retrieves an action by ID
	Get(ctx context.Context, id model.ActionID) (*model.Action, error)

	// List retrieves actions matching filter in creation order
	List(ctx context.Context, filter model.ActionFilter) ([]*model.Action, error)

	// Count returns the number of actions matching filter
	Count(ctx context.Context, filter model.ActionFilter) (int64, error)

	// FindAt returns the offset-th action (zero based) matching filter in
	// creation order
	FindAt(ctx context.Context, filter model.ActionFilter, offset int64) (*model.Action, error)

	// Update atomically reads the action, applies fn and writes the result back.
	// UpdatedAt is refreshed. If fn returns an error nothing is written.
	Update(ctx context.Context, id model.ActionID, fn func(*model.Action) error) (*model.Action, error)

	// Delete deletes an action by ID
	Delete(ctx context.Context, id model.ActionID) error
}

// ActionSampler is implemented by stores that can pick a uniformly random
// matching action natively. Stores without it are sampled by count and offset.
type ActionSampler interface {
	Sample(ctx context.Context, filter model.ActionFilter) (*model.Action, error)
}
