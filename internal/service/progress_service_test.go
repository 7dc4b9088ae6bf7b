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

const testDay = "2025-06-10"

func TestGetDailyStatusRejectsMalformedDate(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))

	_, err := env.progress.GetDailyStatus(context.Background(), "10-06-2025")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestGetDailyStatusEmptyDay(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))

	status, err := env.progress.GetDailyStatus(context.Background(), testDay)
	require.NoError(t, err)

	// Modules with an empty work set count as done at full weight.
	assert.True(t, status.Flow.IsDone)
	assert.True(t, status.Todo.IsDone)
	assert.True(t, status.Bodyshop.IsDone)

	assert.False(t, status.Timedriver.IsDone)
	assert.False(t, status.Quality.IsDone)
	assert.Equal(t, 0, status.Quality.ChecksToday)
	assert.Equal(t, QualityTarget, status.Quality.Target)
	assert.False(t, status.Upgrade.IsDone)
	assert.False(t, status.Future.IsDone)
	assert.False(t, status.HasPostponedTasks)

	// 3 of 6 weighted modules done.
	assert.Equal(t, 50, status.OverallProgress)
}

func TestGetDailyStatusQualityScalesWithCheckCount(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	for i := 0; i < QualityTarget-1; i++ {
		_, err := env.quality.CreateCheck(ctx, QualityCheckInput{
			LicensePlate: "AB-123-C",
			Passed:       i%2 == 0,
		})
		require.NoError(t, err)
	}

	status, err := env.progress.GetDailyStatus(ctx, testDay)
	require.NoError(t, err)
	assert.False(t, status.Quality.IsDone)
	assert.Equal(t, 4, status.Quality.ChecksToday)
	// td 0 + upgrade 0 + flow 1 + todo 1 + quality 0.8 + bodyshop 1 = 3.8/6
	assert.Equal(t, 63, status.OverallProgress)

	_, err = env.quality.CreateCheck(ctx, QualityCheckInput{LicensePlate: "AB-123-C", Passed: false})
	require.NoError(t, err)

	status, err = env.progress.GetDailyStatus(ctx, testDay)
	require.NoError(t, err)
	assert.True(t, status.Quality.IsDone)
	assert.Equal(t, 67, status.OverallProgress)

	// A sixth check does not push the module past full weight.
	_, err = env.quality.CreateCheck(ctx, QualityCheckInput{LicensePlate: "AB-123-C", Passed: true})
	require.NoError(t, err)

	status, err = env.progress.GetDailyStatus(ctx, testDay)
	require.NoError(t, err)
	assert.Equal(t, 6, status.Quality.ChecksToday)
	assert.Equal(t, 67, status.OverallProgress)
}

func TestGetDailyStatusUpgradeDeadline(t *testing.T) {
	ctx := context.Background()

	t.Run("before deadline, empty list is not overdue", func(t *testing.T) {
		env := newTestEnv(t, branchTime(t, testDay, 8, 0))
		status, err := env.progress.GetDailyStatus(ctx, testDay)
		require.NoError(t, err)
		assert.False(t, status.Upgrade.IsOverdue)
		assert.False(t, status.Upgrade.IsDone)
	})

	t.Run("past deadline, empty list is overdue", func(t *testing.T) {
		env := newTestEnv(t, branchTime(t, testDay, 8, 31))
		status, err := env.progress.GetDailyStatus(ctx, testDay)
		require.NoError(t, err)
		assert.True(t, status.Upgrade.IsOverdue)
	})

	t.Run("a registered candidate clears overdue but not done", func(t *testing.T) {
		env := newTestEnv(t, branchTime(t, testDay, 10, 0))
		up, err := env.planning.CreateUpgrade(ctx, UpgradeInput{LicensePlate: "UP-001-X", Model: "Corsa"})
		require.NoError(t, err)

		status, err := env.progress.GetDailyStatus(ctx, testDay)
		require.NoError(t, err)
		assert.False(t, status.Upgrade.IsOverdue)
		assert.False(t, status.Upgrade.IsDone)
		assert.Equal(t, 1, status.Upgrade.Pending)

		_, err = env.planning.MarkUpgradeSold(ctx, up.ID, ptr("JD"))
		require.NoError(t, err)

		status, err = env.progress.GetDailyStatus(ctx, testDay)
		require.NoError(t, err)
		assert.True(t, status.Upgrade.IsDone)
		assert.Equal(t, 1, status.Upgrade.Sold)
		assert.Equal(t, 0, status.Upgrade.Pending)
	})

	t.Run("earlier date is always overdue when empty", func(t *testing.T) {
		env := newTestEnv(t, branchTime(t, testDay, 7, 0))
		status, err := env.progress.GetDailyStatus(ctx, "2025-06-09")
		require.NoError(t, err)
		assert.True(t, status.Upgrade.IsOverdue)
	})

	t.Run("future date is never overdue", func(t *testing.T) {
		env := newTestEnv(t, branchTime(t, testDay, 23, 59))
		status, err := env.progress.GetDailyStatus(ctx, "2025-06-11")
		require.NoError(t, err)
		assert.False(t, status.Upgrade.IsOverdue)
	})
}

func TestGetDailyStatusFlowPartialCredit(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	var ids []uint
	for _, typ := range []string{model.FlowTypeWash, model.FlowTypeVacuum, model.FlowTypeFuel} {
		task, err := env.flow.Create(ctx, FlowTaskInput{LicensePlate: "FL-001-A", TaskType: typ})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	status, err := env.progress.GetDailyStatus(ctx, testDay)
	require.NoError(t, err)
	assert.False(t, status.Flow.IsDone)
	assert.Equal(t, 3, status.Flow.Total)
	assert.Equal(t, 0, status.Flow.Completed)
	base := status.OverallProgress

	_, err = env.flow.Update(ctx, ids[0], FlowTaskPatch{Completed: ptr(true)})
	require.NoError(t, err)

	status, err = env.progress.GetDailyStatus(ctx, testDay)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Flow.Completed)
	assert.Equal(t, 2, status.Flow.Pending)
	assert.Greater(t, status.OverallProgress, base, "each completion must raise the score")

	for _, id := range ids[1:] {
		_, err = env.flow.Update(ctx, id, FlowTaskPatch{Completed: ptr(true)})
		require.NoError(t, err)
	}

	status, err = env.progress.GetDailyStatus(ctx, testDay)
	require.NoError(t, err)
	assert.True(t, status.Flow.IsDone)

	// Deleting every task leaves an empty board, which is done at full weight.
	done := status.OverallProgress
	for _, id := range ids {
		require.NoError(t, env.flow.Delete(ctx, id))
	}
	status, err = env.progress.GetDailyStatus(ctx, testDay)
	require.NoError(t, err)
	assert.True(t, status.Flow.IsDone)
	assert.Equal(t, done, status.OverallProgress)
}

func TestGetDailyStatusPurgesStaleCompletedFlowTasks(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	yesterday := branchTime(t, "2025-06-09", 15, 0)
	stale := model.FlowTask{LicensePlate: "OLD-01-A", TaskType: model.FlowTypeWash, Priority: 1, Completed: true, CreatedAt: yesterday}
	open := model.FlowTask{LicensePlate: "OLD-02-B", TaskType: model.FlowTypeFuel, Priority: 2, CreatedAt: yesterday}
	require.NoError(t, env.db.Create(&stale).Error)
	require.NoError(t, env.db.Create(&open).Error)

	_, err := env.progress.GetDailyStatus(ctx, testDay)
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&model.FlowTask{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "only the completed stale task is purged")

	remaining, err := env.flow.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, open.ID, remaining[0].ID)
}

func TestGetDailyStatusTodoAccounting(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	first, err := env.todos.Create(ctx, TodoInput{Title: "Call insurer", AssignedTo: []string{model.RoleCounter}})
	require.NoError(t, err)
	_, err = env.todos.Create(ctx, TodoInput{Title: "Restock keys", AssignedTo: []string{model.RoleCounter}})
	require.NoError(t, err)

	system := model.Todo{Title: "Collect XX-111-Y", AssignedTo: model.RoleCounter, IsSystemGenerated: true, CreatedAt: env.cal.Now()}
	require.NoError(t, env.db.Create(&system).Error)

	_, err = env.todos.Update(ctx, first.ID, TodoPatch{Completed: ptr(true), CompletedBy: ptr("JD")})
	require.NoError(t, err)

	status, err := env.progress.GetDailyStatus(ctx, testDay)
	require.NoError(t, err)
	assert.Equal(t, 3, status.Todo.Total)
	assert.Equal(t, 1, status.Todo.Completed)
	assert.Equal(t, 2, status.Todo.Pending)
	assert.False(t, status.Todo.IsDone)
	assert.False(t, status.HasPostponedTasks)

	// Postponing drops the todo from today's set but keeps the day incomplete.
	_, err = env.todos.Postpone(ctx, system.ID)
	require.NoError(t, err)

	status, err = env.progress.GetDailyStatus(ctx, testDay)
	require.NoError(t, err)
	assert.Equal(t, 2, status.Todo.Total)
	assert.Equal(t, 1, status.Todo.PostponedToFuture)
	assert.False(t, status.Todo.IsDone)
	assert.True(t, status.HasPostponedTasks)

	// On its new date the todo shows up flagged as carried over.
	status, err = env.progress.GetDailyStatus(ctx, "2025-06-11")
	require.NoError(t, err)
	assert.Equal(t, 3, status.Todo.Total)
	assert.Equal(t, 1, status.Todo.PostponedToToday)
	assert.True(t, status.HasPostponedTasks)
}

func TestGetDailyStatusTimedriverSources(t *testing.T) {
	ctx := context.Background()

	t.Run("manual ledger flag", func(t *testing.T) {
		env := newTestEnv(t, branchTime(t, testDay, 10, 0))
		_, err := env.statuses.SetStatus(ctx, model.ModuleTimedriver, testDay, true, ptr("BM"))
		require.NoError(t, err)

		status, err := env.progress.GetDailyStatus(ctx, testDay)
		require.NoError(t, err)
		assert.True(t, status.Timedriver.IsDone)
		assert.False(t, status.Timedriver.HasCalculation)
	})

	t.Run("saved calculation", func(t *testing.T) {
		env := newTestEnv(t, branchTime(t, testDay, 10, 0))
		_, err := env.planning.SaveCalculation(ctx, TimedriverInput{
			Date:            testDay,
			Rentals:         12,
			BudgetPerRental: 7.5,
			Drivers:         []DriverAllocation{{Initials: "JD", Hours: 6, Cost: 90}},
		})
		require.NoError(t, err)

		status, err := env.progress.GetDailyStatus(ctx, testDay)
		require.NoError(t, err)
		assert.True(t, status.Timedriver.IsDone)
		assert.True(t, status.Timedriver.HasCalculation)
	})
}

func TestGetDailyStatusBodyshopNeedsCommentPerVehicle(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	v1, err := env.vehicles.Create(ctx, VehicleInput{LicensePlate: "bs-001-a", Name: "Astra"})
	require.NoError(t, err)
	v2, err := env.vehicles.Create(ctx, VehicleInput{LicensePlate: "BS-002-B", Name: "Vivaro"})
	require.NoError(t, err)

	status, err := env.progress.GetDailyStatus(ctx, testDay)
	require.NoError(t, err)
	assert.False(t, status.Bodyshop.IsDone)
	assert.Equal(t, 2, status.Bodyshop.Total)
	assert.Equal(t, 0, status.Bodyshop.WithComment)

	_, err = env.vehicles.AddComment(ctx, v1.ID, "waiting on bumper")
	require.NoError(t, err)

	status, err = env.progress.GetDailyStatus(ctx, testDay)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Bodyshop.WithComment)
	assert.False(t, status.Bodyshop.IsDone)

	_, err = env.vehicles.AddComment(ctx, v2.ID, "paint booked")
	require.NoError(t, err)

	status, err = env.progress.GetDailyStatus(ctx, testDay)
	require.NoError(t, err)
	assert.True(t, status.Bodyshop.IsDone)

	// Past vehicles leave the active set and stop counting.
	_, err = env.vehicles.Update(ctx, v2.ID, VehiclePatch{IsPast: ptr(true)})
	require.NoError(t, err)

	status, err = env.progress.GetDailyStatus(ctx, testDay)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Bodyshop.Total)
	assert.True(t, status.Bodyshop.IsDone)
}

func TestGetDailyStatusFuturePanelIsUnweighted(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	before, err := env.progress.GetDailyStatus(ctx, testDay)
	require.NoError(t, err)
	assert.False(t, before.Future.IsDone)

	_, err = env.planning.SavePlanning(ctx, FuturePlanningInput{
		Date:              testDay,
		ReservationsTotal: 10,
		ReservationsCar:   6,
		ReservationsVan:   3,
		ReservationsTas:   1,
	})
	require.NoError(t, err)

	after, err := env.progress.GetDailyStatus(ctx, testDay)
	require.NoError(t, err)
	assert.True(t, after.Future.IsDone)
	require.NotNil(t, after.Future.Plan)
	assert.Equal(t, 10, after.Future.Plan.ReservationsTotal)
	assert.Equal(t, before.OverallProgress, after.OverallProgress, "future panel carries no weight")
}
