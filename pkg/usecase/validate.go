package usecase

import (
	"context"

	"github.com/cherish-app/cherish/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// ValidationIssue represents a dangling user reference found during the DB consistency check
type ValidationIssue struct {
	ActionID model.ActionID // empty for admin issues
	UserID   model.UserID
	Field    string
	Message  string
}

// ValidationResult holds the results of DB validation
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasIssues returns true if there are any validation issues
func (r *ValidationResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// AddIssue adds a validation issue to the result
func (r *ValidationResult) AddIssue(issue ValidationIssue) {
	r.Issues = append(r.Issues, issue)
}

// ValidateDB reports user references that do not resolve to a stored user.
// Users are not enforced on write, so administrators, suggesters, likes and
// done votes may point at unknown IDs. It does NOT modify any data.
func (uc *UseCases) ValidateDB(ctx context.Context) (*ValidationResult, error) {
	result := &ValidationResult{}

	known := make(map[model.UserID]bool)
	exists := func(id model.UserID) (bool, error) {
		if v, ok := known[id]; ok {
			return v, nil
		}
		v, err := uc.repo.User().Exists(ctx, id)
		if err != nil {
			return false, goerr.Wrap(err, "failed to check user", goerr.V(UserIDKey, id))
		}
		known[id] = v
		return v, nil
	}

	for _, id := range uc.guard.IDs() {
		ok, err := exists(id)
		if err != nil {
			return nil, err
		}
		if !ok {
			result.AddIssue(ValidationIssue{
				UserID:  id,
				Field:   "admins",
				Message: "administrator is not a registered user",
			})
		}
	}

	actions, err := uc.repo.Action().List(ctx, model.ActionFilter{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list actions")
	}

	for _, action := range actions {
		refs := []struct {
			field string
			ids   []model.UserID
		}{
			{"suggestedBy", []model.UserID{action.SuggestedBy}},
			{"likes", action.Likes},
			{"done", action.Done},
		}

		for _, ref := range refs {
			for _, id := range ref.ids {
				ok, err := exists(id)
				if err != nil {
					return nil, goerr.Wrap(err, "failed to validate action", goerr.V(ActionIDKey, action.ID))
				}
				if !ok {
					result.AddIssue(ValidationIssue{
						ActionID: action.ID,
						UserID:   id,
						Field:    ref.field,
						Message:  "referenced user is not registered",
					})
				}
			}
		}
	}

	return result, nil
}
