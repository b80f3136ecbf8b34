package services

import (
	"context"
	"testing"

	"github.com/emreacar/identity-backend/internal/dto"
	"github.com/emreacar/identity-backend/internal/security"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_UpdateRehashesPassword(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	hasher := security.NewPasswordHasher(10)
	authSvc := newTestService(st, &fakeMailer{}, AuthPolicy{})
	userSvc := NewUserService(st, hasher)

	registerUser(t, authSvc, "Alice", "alice@x.com", "secret1")
	user, err := st.FindByEmail(context.Background(), "alice@x.com")
	require.NoError(t, err)

	newPassword := "rotated1"
	updated, err := userSvc.Update(context.Background(), user.ID, &dto.UpdateUserRequest{
		Password: &newPassword,
	})
	require.NoError(t, err)
	assert.NotEqual(t, user.PasswordHash, updated.PasswordHash)
	assert.True(t, hasher.Verify(newPassword, updated.PasswordHash))
}

func TestUserService_UpdateRole(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	authSvc := newTestService(st, &fakeMailer{}, AuthPolicy{})
	userSvc := NewUserService(st, security.NewPasswordHasher(10))

	registerUser(t, authSvc, "Alice", "alice@x.com", "secret1")
	user, err := st.FindByEmail(context.Background(), "alice@x.com")
	require.NoError(t, err)

	role := "seller"
	updated, err := userSvc.Update(context.Background(), user.ID, &dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "seller", updated.Role)
}

func TestUserService_UpdateNoFields(t *testing.T) {
	t.Parallel()

	userSvc := NewUserService(newFakeStore(), security.NewPasswordHasher(10))
	_, err := userSvc.Update(context.Background(), uuid.New(), &dto.UpdateUserRequest{})
	assert.Error(t, err)
}

func TestUserService_DeleteUnknown(t *testing.T) {
	t.Parallel()

	userSvc := NewUserService(newFakeStore(), security.NewPasswordHasher(10))
	err := userSvc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
