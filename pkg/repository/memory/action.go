package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cherish-app/cherish/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type actionRepository struct {
	mu      sync.RWMutex
	actions map[model.ActionID]*model.Action
	order   []model.ActionID // creation order
}

func newActionRepository() *actionRepository {
	return &actionRepository{
		actions: make(map[model.ActionID]*model.Action),
	}
}

func (r *actionRepository) Create(ctx context.Context, action *model.Action) (*model.Action, error) {
	if action.ID == "" {
		return nil, goerr.New("action ID is required")
	}
	if err := action.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid action", goerr.V("id", action.ID))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[action.ID]; exists {
		return nil, goerr.New("action already exists", goerr.V("id", action.ID))
	}

	now := time.Now().UTC()
	created := action.Copy()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.actions[created.ID] = created
	r.order = append(r.order, created.ID)
	return created.Copy(), nil
}

func (r *actionRepository) Get(ctx context.Context, id model.ActionID) (*model.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	action, exists := r.actions[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
	}

	return action.Copy(), nil
}

// matching must be called with the lock held
func (r *actionRepository) matching(filter model.ActionFilter) []*model.Action {
	actions := make([]*model.Action, 0, len(r.order))
	for _, id := range r.order {
		if a := r.actions[id]; filter.Matches(a) {
			actions = append(actions, a)
		}
	}
	return actions
}

func (r *actionRepository) List(ctx context.Context, filter model.ActionFilter) ([]*model.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.matching(filter)
	actions := make([]*model.Action, len(matched))
	for i, a := range matched {
		actions[i] = a.Copy()
	}
	return actions, nil
}

func (r *actionRepository) Count(ctx context.Context, filter model.ActionFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.matching(filter))), nil
}

func (r *actionRepository) FindAt(ctx context.Context, filter model.ActionFilter, offset int64) (*model.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.matching(filter)
	if offset < 0 || offset >= int64(len(matched)) {
		return nil, goerr.Wrap(ErrNotFound, "no action at offset", goerr.V("offset", offset))
	}
	return matched[offset].Copy(), nil
}

func (r *actionRepository) Update(ctx context.Context, id model.ActionID, fn func(*model.Action) error) (*model.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.actions[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
	}

	updated := existing.Copy()
	if err := fn(updated); err != nil {
		return nil, err
	}
	if err := updated.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid action", goerr.V("id", id))
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.actions[id] = updated
	return updated.Copy(), nil
}

func (r *actionRepository) Delete(ctx context.Context, id model.ActionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[id]; !exists {
		return goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
	}

	delete(r.actions, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
