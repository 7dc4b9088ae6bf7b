package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"branch-dashboard/internal/model"
	"branch-dashboard/internal/shared"
)

func TestEnsureAdminIsIdempotent(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	admin, err := env.users.EnsureAdmin(ctx, "9999")
	require.NoError(t, err)
	assert.Equal(t, AdminInitials, admin.Initials)
	assert.True(t, admin.IsAdmin)
	assert.NotEqual(t, "9999", admin.PINHash, "PIN must never be stored in the clear")

	again, err := env.users.EnsureAdmin(ctx, "1234")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	all, err := env.users.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserCreateValidation(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	_, err := env.users.Create(ctx, UserInput{Initials: "", PIN: "1234"})
	assert.True(t, errors.Is(err, shared.ErrValidation))

	for _, pin := range []string{"123", "12345", "12a4", ""} {
		_, err := env.users.Create(ctx, UserInput{Initials: "JD", PIN: pin})
		assert.True(t, errors.Is(err, shared.ErrValidation), "pin %q", pin)
	}

	_, err = env.users.Create(ctx, UserInput{Initials: "JD", PIN: "1234", Roles: []string{"janitor"}})
	assert.True(t, errors.Is(err, shared.ErrValidation))

	user, err := env.users.Create(ctx, UserInput{Initials: "JD", PIN: "1234", Roles: []string{model.RoleDriver}})
	require.NoError(t, err)
	assert.False(t, user.IsAdmin, "created users are never admins")
	assert.True(t, user.HasRole(model.RoleDriver))
	assert.False(t, user.HasRole(model.RoleCounter))
}

func TestUserPINMustBeUnique(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	_, err := env.users.Create(ctx, UserInput{Initials: "JD", PIN: "1234"})
	require.NoError(t, err)

	_, err = env.users.Create(ctx, UserInput{Initials: "MB", PIN: "1234"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrPINTaken))
	assert.True(t, errors.Is(err, shared.ErrConflict))

	// Changing another user onto a taken PIN fails the same way.
	other, err := env.users.Create(ctx, UserInput{Initials: "MB", PIN: "5678"})
	require.NoError(t, err)
	_, err = env.users.Update(ctx, other.ID, UserPatch{PIN: ptr("1234")})
	assert.True(t, errors.Is(err, shared.ErrPINTaken))

	// Re-submitting a user's own PIN is not a conflict.
	_, err = env.users.Update(ctx, other.ID, UserPatch{PIN: ptr("5678")})
	require.NoError(t, err)
}

func TestAdminCannotBeDeletedOrDemoted(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	admin, err := env.users.EnsureAdmin(ctx, "9999")
	require.NoError(t, err)

	err = env.users.Delete(ctx, admin.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrAdminImmutable))
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	_, err = env.users.Update(ctx, admin.ID, UserPatch{IsAdmin: ptr(false)})
	assert.True(t, errors.Is(err, shared.ErrAdminImmutable))

	// Everything else about the admin may change.
	updated, err := env.users.Update(ctx, admin.ID, UserPatch{PIN: ptr("4321")})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
}

func TestDeleteRegularUser(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	user, err := env.users.Create(ctx, UserInput{Initials: "JD", PIN: "1234"})
	require.NoError(t, err)
	require.NoError(t, env.users.Delete(ctx, user.ID))

	_, err = env.users.Get(ctx, user.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestFindByPIN(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	_, err := env.users.EnsureAdmin(ctx, "9999")
	require.NoError(t, err)
	created, err := env.users.Create(ctx, UserInput{Initials: "JD", PIN: "1234", Roles: []string{model.RoleCounter}})
	require.NoError(t, err)

	user, err := env.users.FindByPIN(ctx, "1234")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = env.users.FindByPIN(ctx, "0000")
	assert.True(t, errors.Is(err, shared.ErrInvalidPIN))

	_, err = env.users.FindByPIN(ctx, "99999")
	assert.True(t, errors.Is(err, shared.ErrInvalidPIN))
}

func TestAdminHoldsEveryRole(t *testing.T) {
	admin := model.User{IsAdmin: true}
	assert.True(t, admin.HasRole(model.RoleCounter))
	assert.True(t, admin.HasRole(model.RoleDriver))

	counter := model.User{Roles: "counter"}
	assert.True(t, counter.HasRole(model.RoleCounter))
	assert.False(t, counter.HasRole(model.RoleDriver))
}
