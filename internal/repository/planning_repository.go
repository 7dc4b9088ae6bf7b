package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"branch-dashboard/internal/model"
)

// PlanningRepository stores the per-day planning records: timedriver calculations,
// upgrade vehicles and future planning. Calculations and planning are one-per-date.
type PlanningRepository struct {
	db *gorm.DB
}

func NewPlanningRepository(db *gorm.DB) *PlanningRepository {
	return &PlanningRepository{db: db}
}

// UpsertCalculation overwrites the timedriver calculation for its date.
func (r *PlanningRepository) UpsertCalculation(ctx context.Context, calc *model.TimedriverCalculation) error {
	db := r.db.WithContext(ctx)
	var existing model.TimedriverCalculation
	err := db.Where("date = ?", calc.Date).First(&existing).Error
	switch {
	case err == nil:
		calc.ID = existing.ID
	case err == gorm.ErrRecordNotFound:
	default:
		return fmt.Errorf("find calculation: %w", err)
	}
	if err := db.Save(calc).Error; err != nil {
		return fmt.Errorf("save calculation: %w", err)
	}
	return nil
}

func (r *PlanningRepository) FindCalculation(ctx context.Context, date string) (*model.TimedriverCalculation, error) {
	var calc model.TimedriverCalculation
	if err := r.db.WithContext(ctx).Where("date = ?", date).First(&calc).Error; err != nil {
		return nil, mapErr(err)
	}
	return &calc, nil
}

// UpsertPlanning overwrites the future planning record for its date.
func (r *PlanningRepository) UpsertPlanning(ctx context.Context, plan *model.FuturePlanning) error {
	db := r.db.WithContext(ctx)
	var existing model.FuturePlanning
	err := db.Where("date = ?", plan.Date).First(&existing).Error
	switch {
	case err == nil:
		plan.ID = existing.ID
	case err == gorm.ErrRecordNotFound:
	default:
		return fmt.Errorf("find planning: %w", err)
	}
	if err := db.Save(plan).Error; err != nil {
		return fmt.Errorf("save planning: %w", err)
	}
	return nil
}

func (r *PlanningRepository) FindPlanning(ctx context.Context, date string) (*model.FuturePlanning, error) {
	var plan model.FuturePlanning
	if err := r.db.WithContext(ctx).Where("date = ?", date).First(&plan).Error; err != nil {
		return nil, mapErr(err)
	}
	return &plan, nil
}

func (r *PlanningRepository) CreateUpgrade(ctx context.Context, up *model.UpgradeVehicle) error {
	if err := r.db.WithContext(ctx).Create(up).Error; err != nil {
		return fmt.Errorf("create upgrade vehicle: %w", err)
	}
	return nil
}

func (r *PlanningRepository) FindUpgradeByID(ctx context.Context, id uint) (*model.UpgradeVehicle, error) {
	var up model.UpgradeVehicle
	if err := r.db.WithContext(ctx).First(&up, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &up, nil
}

func (r *PlanningRepository) SaveUpgrade(ctx context.Context, up *model.UpgradeVehicle) error {
	if err := r.db.WithContext(ctx).Save(up).Error; err != nil {
		return fmt.Errorf("save upgrade vehicle: %w", err)
	}
	return nil
}

func (r *PlanningRepository) DeleteUpgrade(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.UpgradeVehicle{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete upgrade vehicle: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return mapErr(gorm.ErrRecordNotFound)
	}
	return nil
}

// ListUpgradesForDate returns the upgrade candidates for one civil date.
func (r *PlanningRepository) ListUpgradesForDate(ctx context.Context, date string) ([]model.UpgradeVehicle, error) {
	var ups []model.UpgradeVehicle
	if err := r.db.WithContext(ctx).Where("date = ?", date).
		Order("created_at ASC").Find(&ups).Error; err != nil {
		return nil, err
	}
	return ups, nil
}
