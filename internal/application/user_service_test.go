package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shareit-app/shareit/internal/domain"
)

func newUserService() (*UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewUserService(repo, zap.NewNop()), repo
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("registers user", func(t *testing.T) {
		svc, _ := newUserService()

		dto, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Olga", Email: "olga@example.com"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, dto.ID)
		assert.Equal(t, "olga@example.com", dto.Email)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, _ := newUserService()

		_, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Olga", Email: "olga@example.com"})
		require.NoError(t, err)

		_, err = svc.CreateUser(ctx, CreateUserRequest{Name: "Other Olga", Email: "olga@example.com"})
		var cerr *domain.ConflictError
		require.True(t, errors.As(err, &cerr))
	})

	t.Run("malformed email", func(t *testing.T) {
		svc, _ := newUserService()

		_, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Olga", Email: "not-an-email"})
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
	})

	t.Run("blank name", func(t *testing.T) {
		svc, _ := newUserService()

		_, err := svc.CreateUser(ctx, CreateUserRequest{Name: "", Email: "olga@example.com"})
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("patches single field", func(t *testing.T) {
		svc, _ := newUserService()
		dto, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Olga", Email: "olga@example.com"})
		require.NoError(t, err)

		name := "Olga K"
		updated, err := svc.UpdateUser(ctx, dto.ID, UpdateUserRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Olga K", updated.Name)
		assert.Equal(t, "olga@example.com", updated.Email)
	})

	t.Run("rejects malformed email patch", func(t *testing.T) {
		svc, _ := newUserService()
		dto, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Olga", Email: "olga@example.com"})
		require.NoError(t, err)

		bad := "nope"
		_, err = svc.UpdateUser(ctx, dto.ID, UpdateUserRequest{Email: &bad})
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newUserService()

		name := "Ghost"
		_, err := svc.UpdateUser(ctx, uuid.New(), UpdateUserRequest{Name: &name})
		var nf *domain.NotFoundError
		require.True(t, errors.As(err, &nf))
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService()

	dto, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Olga", Email: "olga@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, dto.ID))

	_, err = svc.GetUser(ctx, dto.ID)
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))

	err = svc.DeleteUser(ctx, dto.ID)
	require.True(t, errors.As(err, &nf), "deleting a missing user is not found")
}

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService()

	_, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Olga", Email: "olga@example.com"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, CreateUserRequest{Name: "Boris", Email: "boris@example.com"})
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
