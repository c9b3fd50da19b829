package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/cherish-app/cherish/pkg/domain/interfaces"
	"github.com/cherish-app/cherish/pkg/domain/model"
	"github.com/cherish-app/cherish/pkg/domain/types"
	"github.com/cherish-app/cherish/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type ActionUseCase struct {
	repo   interfaces.Repository
	guard  *AdminGuard
	random func(n int64) int64
}

func NewActionUseCase(repo interfaces.Repository, guard *AdminGuard, random func(n int64) int64) *ActionUseCase {
	return &ActionUseCase{
		repo:   repo,
		guard:  guard,
		random: random,
	}
}

// SuggestInput is a new action proposed by a user. A nil For means the
// audience was not supplied at all.
type SuggestInput struct {
	Act         string
	For         []string
	Like        bool
	Did         bool
	Suggester   model.UserID
	Description *string
	ImageLink   *string
}

func (uc *ActionUseCase) SuggestAction(ctx context.Context, input SuggestInput) (*model.Action, error) {
	if input.Act == "" {
		return nil, goerr.Wrap(ErrValidation, "act is required")
	}
	if input.For == nil {
		return nil, goerr.Wrap(ErrValidation, "for is required")
	}
	if input.Suggester == "" {
		return nil, goerr.Wrap(ErrValidation, "suggester is required")
	}

	action := &model.Action{
		ID:          model.NewActionID(),
		Action:      input.Act,
		For:         append(make([]string, 0, len(input.For)), input.For...),
		Likes:       model.NewIDSet(),
		Done:        model.NewIDSet(),
		SuggestedBy: input.Suggester,
		Description: input.Description,
		ImageLink:   input.ImageLink,
	}
	if input.Like {
		action.Likes = model.NewIDSet(input.Suggester)
	}
	if input.Did {
		action.Done = model.NewIDSet(input.Suggester)
	}

	created, err := uc.repo.Action().Create(ctx, action)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create action",
			goerr.V(ActionIDKey, action.ID),
			goerr.V(UserIDKey, input.Suggester))
	}

	logging.From(ctx).Info("action suggested",
		ActionIDKey, created.ID,
		UserIDKey, created.SuggestedBy)

	return created, nil
}

// ListActions returns actions matching filter in creation order
func (uc *ActionUseCase) ListActions(ctx context.Context, filter model.ActionFilter) ([]*model.Action, error) {
	actions, err := uc.repo.Action().List(ctx, filter)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list actions",
			goerr.V("approved_only", filter.ApprovedOnly),
			goerr.V("for", filter.For))
	}
	return actions, nil
}

// GetAction returns the action, or nil without error if it does not exist
func (uc *ActionUseCase) GetAction(ctx context.Context, id model.ActionID) (*model.Action, error) {
	action, err := uc.repo.Action().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get action", goerr.V(ActionIDKey, id))
	}
	return action, nil
}

// RandomAction picks an approved action uniformly at random
func (uc *ActionUseCase) RandomAction(ctx context.Context) (*model.Action, error) {
	filter := model.ActionFilter{ApprovedOnly: true}

	if sampler, ok := uc.repo.Action().(interfaces.ActionSampler); ok {
		action, err := sampler.Sample(ctx, filter)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, goerr.Wrap(ErrNoApprovedActions, "no approved actions to sample")
			}
			return nil, goerr.Wrap(err, "failed to sample approved action")
		}
		return action, nil
	}

	count, err := uc.repo.Action().Count(ctx, filter)
	if err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", ErrSamplePoolUnavailable, err),
			"failed to count approved actions")
	}
	if count == 0 {
		return nil, goerr.Wrap(ErrNoApprovedActions, "no approved actions to sample")
	}

	offset := uc.random(count)
	action, err := uc.repo.Action().FindAt(ctx, filter, offset)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get approved action at offset",
			goerr.V("offset", offset),
			goerr.V("count", count))
	}
	return action, nil
}

// lookupAction loads the action before a mutation. A missing action and a
// failing store both surface as ErrActionNotFound; the latter keeps its cause.
func (uc *ActionUseCase) lookupAction(ctx context.Context, id model.ActionID) error {
	if _, err := uc.repo.Action().Get(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrActionNotFound, "action not found", goerr.V(ActionIDKey, id))
		}
		return goerr.Wrap(fmt.Errorf("%w: %w", ErrActionNotFound, err),
			"failed to look up action", goerr.V(ActionIDKey, id))
	}
	return nil
}

// ApproveAction marks the action approved. Only administrators may approve,
// and approving an approved action succeeds again.
func (uc *ActionUseCase) ApproveAction(ctx context.Context, id model.ActionID, userID model.UserID) (*model.Action, error) {
	if !uc.guard.IsAdmin(userID) {
		return nil, goerr.Wrap(ErrNotAuthorized, "user cannot approve actions",
			goerr.V(ActionIDKey, id),
			goerr.V(UserIDKey, userID))
	}

	if err := uc.lookupAction(ctx, id); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Action().Update(ctx, id, func(a *model.Action) error {
		a.Approve()
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to approve action",
			goerr.V(ActionIDKey, id),
			goerr.V(UserIDKey, userID))
	}

	logging.From(ctx).Info("action approved",
		ActionIDKey, id,
		UserIDKey, userID)

	return updated, nil
}

// ToggleEngagement flips userID's like or done vote on the action. It reports
// whether the vote was removed.
func (uc *ActionUseCase) ToggleEngagement(ctx context.Context, id model.ActionID, kind types.Engagement, userID model.UserID) (bool, error) {
	if !kind.IsValid() {
		return false, goerr.Wrap(ErrValidation, "unknown engagement", goerr.V("kind", kind))
	}

	exists, err := uc.repo.User().Exists(ctx, userID)
	if err != nil {
		return false, goerr.Wrap(fmt.Errorf("%w: %w", ErrUserNotFound, err),
			"failed to look up user", goerr.V(UserIDKey, userID))
	}
	if !exists {
		return false, goerr.Wrap(ErrUserNotFound, "user not found", goerr.V(UserIDKey, userID))
	}

	if err := uc.lookupAction(ctx, id); err != nil {
		return false, err
	}

	var removed bool
	_, err = uc.repo.Action().Update(ctx, id, func(a *model.Action) error {
		r, err := a.Toggle(kind, userID)
		if err != nil {
			return err
		}
		removed = r
		return nil
	})
	if err != nil {
		return false, goerr.Wrap(err, "failed to toggle engagement",
			goerr.V(ActionIDKey, id),
			goerr.V(UserIDKey, userID),
			goerr.V("kind", kind))
	}

	logging.From(ctx).Debug("engagement toggled",
		ActionIDKey, id,
		UserIDKey, userID,
		"kind", kind,
		"removed", removed)

	return removed, nil
}

// DeleteAction removes the action. Only administrators may delete.
func (uc *ActionUseCase) DeleteAction(ctx context.Context, id model.ActionID, userID model.UserID) error {
	if !uc.guard.IsAdmin(userID) {
		return goerr.Wrap(ErrNotAuthorized, "user cannot delete actions",
			goerr.V(ActionIDKey, id),
			goerr.V(UserIDKey, userID))
	}

	if err := uc.repo.Action().Delete(ctx, id); err != nil {
		return goerr.Wrap(fmt.Errorf("%w: %w", ErrDeleteFailed, err),
			"failed to delete action",
			goerr.V(ActionIDKey, id),
			goerr.V(UserIDKey, userID))
	}

	logging.From(ctx).Info("action deleted",
		ActionIDKey, id,
		UserIDKey, userID)

	return nil
}
