package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/cherish-app/cherish/pkg/domain/interfaces"
	"github.com/cherish-app/cherish/pkg/domain/model"
	"github.com/cherish-app/cherish/pkg/repository/memory"
	"github.com/m-mizutani/gt"
)

func runUserRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.User().Create(ctx, &model.User{
			ID:    model.NewUserID(),
			Email: "alice@example.com",
			Name:  "Alice",
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, created.CreatedAt.IsZero()).False()

		got, err := repo.User().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(created.ID)
		gt.Value(t, got.Email).Equal("alice@example.com")
		gt.Value(t, got.Name).Equal("Alice")
	})

	t.Run("Create rejects user without email", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.User().Create(context.Background(), &model.User{ID: model.NewUserID()})
		gt.Error(t, err)
	})

	t.Run("Get returns error for unknown ID", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.User().Get(context.Background(), model.NewUserID())
		gt.Error(t, err)
	})

	t.Run("Exists reports membership", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.User().Create(ctx, &model.User{
			ID:    model.NewUserID(),
			Email: "bob@example.com",
		})
		gt.NoError(t, err).Required()

		ok, err := repo.User().Exists(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()

		ok, err = repo.User().Exists(ctx, model.NewUserID())
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()

		ok, err = repo.User().Exists(ctx, "")
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()
	})
}

func TestUserRepository_Memory(t *testing.T) {
	runUserRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestUserRepository_Firestore(t *testing.T) {
	if os.Getenv("FIRESTORE_PROJECT_ID") == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runUserRepositoryTest(t, newFirestoreRepository)
}
