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

func TestSetStatusUpserts(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	status, err := env.statuses.SetStatus(ctx, model.ModuleFlow, testDay, true, ptr("BM"))
	require.NoError(t, err)
	assert.True(t, status.IsDone)
	require.NotNil(t, status.DoneAt)
	require.NotNil(t, status.DoneBy)
	assert.Equal(t, "BM", *status.DoneBy)

	// Toggling off reuses the row and clears the completion stamp.
	status, err = env.statuses.SetStatus(ctx, model.ModuleFlow, testDay, false, nil)
	require.NoError(t, err)
	assert.False(t, status.IsDone)
	assert.Nil(t, status.DoneAt)

	var count int64
	require.NoError(t, env.db.Model(&model.ModuleStatus{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetStatusKeepsDatesApart(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	_, err := env.statuses.SetStatus(ctx, model.ModuleTodo, "2025-06-09", true, nil)
	require.NoError(t, err)
	_, err = env.statuses.SetStatus(ctx, model.ModuleTodo, testDay, false, nil)
	require.NoError(t, err)

	today, err := env.statuses.GetStatuses(ctx, testDay)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.False(t, today[0].IsDone)

	yesterday, err := env.statuses.GetStatuses(ctx, "2025-06-09")
	require.NoError(t, err)
	require.Len(t, yesterday, 1)
	assert.True(t, yesterday[0].IsDone)
}

func TestSetStatusValidation(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	_, err := env.statuses.SetStatus(ctx, "", testDay, true, nil)
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = env.statuses.SetStatus(ctx, model.ModuleFlow, "someday", true, nil)
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = env.statuses.GetStatuses(ctx, "someday")
	assert.True(t, errors.Is(err, shared.ErrValidation))
}
