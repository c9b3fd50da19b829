package usecase

import (
	"math/rand/v2"

	"github.com/cherish-app/cherish/pkg/domain/interfaces"
)

type UseCases struct {
	repo   interfaces.Repository
	guard  *AdminGuard
	random func(n int64) int64
	Action *ActionUseCase
	User   *UserUseCase
}

type Option func(*UseCases)

// WithAdminGuard sets the allow-list used for approval and deletion. Without
// it nobody is an administrator.
func WithAdminGuard(guard *AdminGuard) Option {
	return func(uc *UseCases) {
		uc.guard = guard
	}
}

// WithRandom replaces the source used to pick random actions. fn must return
// a value in [0, n).
func WithRandom(fn func(n int64) int64) Option {
	return func(uc *UseCases) {
		uc.random = fn
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:   repo,
		random: rand.Int64N,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.guard == nil {
		uc.guard = NewAdminGuard(nil)
	}

	uc.Action = NewActionUseCase(repo, uc.guard, uc.random)
	uc.User = NewUserUseCase(repo)

	return uc
}
