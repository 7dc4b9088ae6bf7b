package service

import (
	"context"
	"encoding/json"

	"branch-dashboard/internal/clock"
	"branch-dashboard/internal/model"
	"branch-dashboard/internal/repository"
	"branch-dashboard/internal/shared"
)

// DriverAllocation is one driver's share of the daily labor budget.
type DriverAllocation struct {
	Initials string  `json:"initials"`
	Hours    float64 `json:"hours"`
	Cost     float64 `json:"cost"`
}

// TimedriverInput represents a labor-budget calculation for one civil day.
type TimedriverInput struct {
	Date            string
	Rentals         int
	BudgetPerRental float64
	Drivers         []DriverAllocation
	CalculatedBy    *string
}

// FuturePlanningInput represents tomorrow's reservation outlook.
type FuturePlanningInput struct {
	Date               string
	ReservationsTotal  int
	ReservationsCar    int
	ReservationsVan    int
	ReservationsTas    int
	DeliveriesTomorrow int
	CollectionsOpen    int
	CarDayMin          *int
	VanDayMin          *int
	SavedBy            *string
}

// UpgradeInput represents an upgrade-sale candidate.
type UpgradeInput struct {
	LicensePlate string
	Model        string
	Reason       string
	IsVan        bool
	Date         string
	CreatedBy    *string
}

// PlanningService owns the per-day planning records: timedriver calculations,
// future planning (with its sum invariant) and upgrade-sale tracking.
type PlanningService struct {
	planning *repository.PlanningRepository
	cal      *clock.Calendar
	notifier Notifier
}

func NewPlanningService(planning *repository.PlanningRepository, cal *clock.Calendar, notifier Notifier) *PlanningService {
	return &PlanningService{planning: planning, cal: cal, notifier: notifier}
}

// SaveCalculation upserts the timedriver calculation for its date.
func (s *PlanningService) SaveCalculation(ctx context.Context, input TimedriverInput) (*model.TimedriverCalculation, error) {
	if !clock.ValidDate(input.Date) {
		return nil, shared.Invalid("date", "expected YYYY-MM-DD")
	}
	if input.Rentals < 0 {
		return nil, shared.Invalid("rentals", "must not be negative")
	}

	driversData, err := json.Marshal(input.Drivers)
	if err != nil {
		return nil, shared.Invalid("drivers", "not serializable")
	}

	calc := model.TimedriverCalculation{
		Date:            input.Date,
		Rentals:         input.Rentals,
		BudgetPerRental: input.BudgetPerRental,
		TotalBudget:     float64(input.Rentals) * input.BudgetPerRental,
		DriversData:     string(driversData),
		CalculatedBy:    input.CalculatedBy,
		CalculatedAt:    s.cal.Now(),
	}
	if err := s.planning.UpsertCalculation(ctx, &calc); err != nil {
		return nil, err
	}
	s.notifier.Notify(ResourceTimedriver)
	return &calc, nil
}

func (s *PlanningService) GetCalculation(ctx context.Context, date string) (*model.TimedriverCalculation, error) {
	return s.planning.FindCalculation(ctx, date)
}

// SavePlanning upserts the future planning record for its date. Writes violating
// car + van + tas == total are rejected as validation failures and persist nothing.
func (s *PlanningService) SavePlanning(ctx context.Context, input FuturePlanningInput) (*model.FuturePlanning, error) {
	if !clock.ValidDate(input.Date) {
		return nil, shared.Invalid("date", "expected YYYY-MM-DD")
	}
	if input.ReservationsCar+input.ReservationsVan+input.ReservationsTas != input.ReservationsTotal {
		return nil, shared.Invalid("reservationsTotal", "car + van + tas must equal total")
	}

	plan := model.FuturePlanning{
		Date:               input.Date,
		ReservationsTotal:  input.ReservationsTotal,
		ReservationsCar:    input.ReservationsCar,
		ReservationsVan:    input.ReservationsVan,
		ReservationsTas:    input.ReservationsTas,
		DeliveriesTomorrow: input.DeliveriesTomorrow,
		CollectionsOpen:    input.CollectionsOpen,
		CarDayMin:          input.CarDayMin,
		VanDayMin:          input.VanDayMin,
		SavedBy:            input.SavedBy,
		SavedAt:            s.cal.Now(),
	}
	if err := s.planning.UpsertPlanning(ctx, &plan); err != nil {
		return nil, err
	}
	s.notifier.Notify(ResourcePlanning)
	return &plan, nil
}

func (s *PlanningService) GetPlanning(ctx context.Context, date string) (*model.FuturePlanning, error) {
	return s.planning.FindPlanning(ctx, date)
}

// CreateUpgrade registers an upgrade-sale candidate, defaulting to today.
func (s *PlanningService) CreateUpgrade(ctx context.Context, input UpgradeInput) (*model.UpgradeVehicle, error) {
	plate := normalizePlate(input.LicensePlate)
	if plate == "" {
		return nil, shared.Invalid("licensePlate", "is required")
	}
	date := input.Date
	if date == "" {
		date = s.cal.Today()
	}
	if !clock.ValidDate(date) {
		return nil, shared.Invalid("date", "expected YYYY-MM-DD")
	}

	up := model.UpgradeVehicle{
		LicensePlate: plate,
		Model:        input.Model,
		Reason:       input.Reason,
		IsVan:        input.IsVan,
		Date:         date,
		CreatedBy:    input.CreatedBy,
		CreatedAt:    s.cal.Now(),
	}
	if err := s.planning.CreateUpgrade(ctx, &up); err != nil {
		return nil, err
	}
	s.notifier.Notify(ResourceUpgrade)
	return &up, nil
}

// MarkUpgradeSold flags a candidate as sold by the given actor.
func (s *PlanningService) MarkUpgradeSold(ctx context.Context, id uint, soldBy *string) (*model.UpgradeVehicle, error) {
	up, err := s.planning.FindUpgradeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.cal.Now()
	up.IsSold = true
	up.SoldBy = soldBy
	up.SoldAt = &now
	if err := s.planning.SaveUpgrade(ctx, up); err != nil {
		return nil, err
	}
	s.notifier.Notify(ResourceUpgrade)
	return up, nil
}

func (s *PlanningService) DeleteUpgrade(ctx context.Context, id uint) error {
	if err := s.planning.DeleteUpgrade(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify(ResourceUpgrade)
	return nil
}

func (s *PlanningService) ListUpgradesForDate(ctx context.Context, date string) ([]model.UpgradeVehicle, error) {
	if !clock.ValidDate(date) {
		return nil, shared.Invalid("date", "expected YYYY-MM-DD")
	}
	return s.planning.ListUpgradesForDate(ctx, date)
}
