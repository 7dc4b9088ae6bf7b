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

func TestTodoCreateValidation(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	_, err := env.todos.Create(ctx, TodoInput{Title: ""})
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = env.todos.Create(ctx, TodoInput{Title: "x", AssignedTo: []string{"janitor"}})
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = env.todos.Create(ctx, TodoInput{Title: "x", Priority: 4})
	assert.True(t, errors.Is(err, shared.ErrValidation))

	todo, err := env.todos.Create(ctx, TodoInput{
		Title:      "Check fuel cards",
		AssignedTo: []string{model.RoleCounter, model.RoleDriver},
		Priority:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, "counter,driver", todo.AssignedTo)
	assert.False(t, todo.IsSystemGenerated)
}

func TestTodoCompletionMarksLinkedVehiclePast(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	v, err := env.vehicles.Create(ctx, VehicleInput{LicensePlate: "AB-123-C"})
	require.NoError(t, err)
	v, err = env.vehicles.Update(ctx, v.ID, VehiclePatch{ReadyForCollection: ptr(true)})
	require.NoError(t, err)

	todo, err := env.todos.Update(ctx, *v.CollectionTodoID, TodoPatch{Completed: ptr(true), CompletedBy: ptr("JD")})
	require.NoError(t, err)
	assert.True(t, todo.Completed)
	require.NotNil(t, todo.CompletedAt)
	assert.True(t, todo.CompletedAt.Equal(env.cal.Now()))

	v, err = env.vehicles.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, v.IsPast, "completing the collection todo retires the vehicle")

	active, err := env.vehicles.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestTodoCompletionOfPlainTodoLeavesVehiclesAlone(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	v, err := env.vehicles.Create(ctx, VehicleInput{LicensePlate: "AB-123-C"})
	require.NoError(t, err)

	todo, err := env.todos.Create(ctx, TodoInput{Title: "Order coffee"})
	require.NoError(t, err)
	_, err = env.todos.Update(ctx, todo.ID, TodoPatch{Completed: ptr(true)})
	require.NoError(t, err)

	v, err = env.vehicles.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, v.IsPast)
}

func TestTodoUncompleteClearsCompletionFields(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	todo, err := env.todos.Create(ctx, TodoInput{Title: "Sweep lot"})
	require.NoError(t, err)
	todo, err = env.todos.Update(ctx, todo.ID, TodoPatch{Completed: ptr(true), CompletedBy: ptr("JD")})
	require.NoError(t, err)
	require.NotNil(t, todo.CompletedBy)

	todo, err = env.todos.Update(ctx, todo.ID, TodoPatch{Completed: ptr(false)})
	require.NoError(t, err)
	assert.False(t, todo.Completed)
	assert.Nil(t, todo.CompletedAt)
	assert.Nil(t, todo.CompletedBy)
}

func TestTodoPostponeOnceOnly(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	v, err := env.vehicles.Create(ctx, VehicleInput{LicensePlate: "AB-123-C"})
	require.NoError(t, err)
	v, err = env.vehicles.Update(ctx, v.ID, VehiclePatch{ReadyForCollection: ptr(true)})
	require.NoError(t, err)
	todoID := *v.CollectionTodoID

	todo, err := env.todos.Postpone(ctx, todoID)
	require.NoError(t, err)
	require.NotNil(t, todo.PostponedToDate)
	assert.Equal(t, "2025-06-11", *todo.PostponedToDate)
	assert.Equal(t, 1, todo.PostponeCount)

	// A second postponement is a hard failure, not a silent no-op.
	_, err = env.todos.Postpone(ctx, todoID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrPostponeLimit))
	assert.True(t, errors.Is(err, shared.ErrValidation))

	todo, err = env.todos.Get(ctx, todoID)
	require.NoError(t, err)
	assert.Equal(t, 1, todo.PostponeCount)
	assert.Equal(t, "2025-06-11", *todo.PostponedToDate)
}

func TestTodoPostponeRejectsManualTodos(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	todo, err := env.todos.Create(ctx, TodoInput{Title: "Wash windows"})
	require.NoError(t, err)

	_, err = env.todos.Postpone(ctx, todo.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestTodoListForDateHidesPostponed(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	v, err := env.vehicles.Create(ctx, VehicleInput{LicensePlate: "AB-123-C"})
	require.NoError(t, err)
	v, err = env.vehicles.Update(ctx, v.ID, VehiclePatch{ReadyForCollection: ptr(true)})
	require.NoError(t, err)
	_, err = env.todos.Postpone(ctx, *v.CollectionTodoID)
	require.NoError(t, err)

	today, err := env.todos.ListToday(ctx)
	require.NoError(t, err)
	assert.Empty(t, today)

	tomorrow, err := env.todos.ListForDate(ctx, "2025-06-11")
	require.NoError(t, err)
	require.Len(t, tomorrow, 1)
	assert.Equal(t, *v.CollectionTodoID, tomorrow[0].ID)
}

func TestTodoListOrdersByPriorityThenAge(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	low, err := env.todos.Create(ctx, TodoInput{Title: "low", Priority: 0})
	require.NoError(t, err)
	urgentOld, err := env.todos.Create(ctx, TodoInput{Title: "urgent old", Priority: 3})
	require.NoError(t, err)
	urgentNew, err := env.todos.Create(ctx, TodoInput{Title: "urgent new", Priority: 3})
	require.NoError(t, err)

	todos, err := env.todos.ListToday(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, urgentOld.ID, todos[0].ID)
	assert.Equal(t, urgentNew.ID, todos[1].ID)
	assert.Equal(t, low.ID, todos[2].ID)
}
