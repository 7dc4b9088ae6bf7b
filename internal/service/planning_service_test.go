package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"branch-dashboard/internal/shared"
)

func TestTimedriverCalculationUpsert(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	calc, err := env.planning.SaveCalculation(ctx, TimedriverInput{
		Date:            testDay,
		Rentals:         20,
		BudgetPerRental: 6.5,
		Drivers: []DriverAllocation{
			{Initials: "JD", Hours: 8, Cost: 120},
			{Initials: "MB", Hours: 4, Cost: 60},
		},
		CalculatedBy: ptr("BM"),
	})
	require.NoError(t, err)
	assert.InDelta(t, 130, calc.TotalBudget, 1e-9)

	var drivers []DriverAllocation
	require.NoError(t, json.Unmarshal([]byte(calc.DriversData), &drivers))
	require.Len(t, drivers, 2)
	assert.Equal(t, "JD", drivers[0].Initials)

	// A second save for the same date replaces, not duplicates.
	calc, err = env.planning.SaveCalculation(ctx, TimedriverInput{Date: testDay, Rentals: 5, BudgetPerRental: 10})
	require.NoError(t, err)
	assert.InDelta(t, 50, calc.TotalBudget, 1e-9)

	stored, err := env.planning.GetCalculation(ctx, testDay)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Rentals)
}

func TestTimedriverCalculationValidation(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	_, err := env.planning.SaveCalculation(ctx, TimedriverInput{Date: "June 10"})
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = env.planning.SaveCalculation(ctx, TimedriverInput{Date: testDay, Rentals: -1})
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestFuturePlanningSumInvariant(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	_, err := env.planning.SavePlanning(ctx, FuturePlanningInput{
		Date:              testDay,
		ReservationsTotal: 10,
		ReservationsCar:   5,
		ReservationsVan:   3,
		ReservationsTas:   1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrValidation))

	// The rejected write must not leave a partial record behind.
	_, err = env.planning.GetPlanning(ctx, testDay)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	plan, err := env.planning.SavePlanning(ctx, FuturePlanningInput{
		Date:               testDay,
		ReservationsTotal:  10,
		ReservationsCar:    5,
		ReservationsVan:    3,
		ReservationsTas:    2,
		DeliveriesTomorrow: 4,
		CollectionsOpen:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, plan.ReservationsTotal)

	stored, err := env.planning.GetPlanning(ctx, testDay)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.DeliveriesTomorrow)
}

func TestUpgradeLifecycle(t *testing.T) {
	env := newTestEnv(t, branchTime(t, testDay, 10, 0))
	ctx := context.Background()

	up, err := env.planning.CreateUpgrade(ctx, UpgradeInput{LicensePlate: "up-100-z", Model: "Mokka", IsVan: false})
	require.NoError(t, err)
	assert.Equal(t, "UP-100-Z", up.LicensePlate)
	assert.Equal(t, testDay, up.Date, "date defaults to today")
	assert.False(t, up.IsSold)

	up, err = env.planning.MarkUpgradeSold(ctx, up.ID, ptr("JD"))
	require.NoError(t, err)
	assert.True(t, up.IsSold)
	require.NotNil(t, up.SoldBy)
	assert.Equal(t, "JD", *up.SoldBy)
	require.NotNil(t, up.SoldAt)

	list, err := env.planning.ListUpgradesForDate(ctx, testDay)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, env.planning.DeleteUpgrade(ctx, up.ID))
	list, err = env.planning.ListUpgradesForDate(ctx, testDay)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = env.planning.DeleteUpgrade(ctx, up.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
