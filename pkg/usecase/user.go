package usecase

import (
	"context"
	"errors"

	"github.com/cherish-app/cherish/pkg/domain/interfaces"
	"github.com/cherish-app/cherish/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type UserUseCase struct {
	repo interfaces.Repository
}

func NewUserUseCase(repo interfaces.Repository) *UserUseCase {
	return &UserUseCase{
		repo: repo,
	}
}

func (uc *UserUseCase) AddUser(ctx context.Context, email, name string) (*model.User, error) {
	if email == "" {
		return nil, goerr.Wrap(ErrValidation, "email is required")
	}

	user := &model.User{
		ID:    model.NewUserID(),
		Email: email,
		Name:  name,
	}

	created, err := uc.repo.User().Create(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create user", goerr.V(UserIDKey, user.ID))
	}
	return created, nil
}

// GetUser returns the user, or nil without error if it does not exist
func (uc *UserUseCase) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V(UserIDKey, id))
	}
	return user, nil
}
