package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"branch-dashboard/internal/model"
)

// SettingsRepository stores keyed app settings and KPI metrics, both upsert-by-key.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (*model.AppSetting, error) {
	var setting model.AppSetting
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error; err != nil {
		return nil, mapErr(err)
	}
	return &setting, nil
}

func (r *SettingsRepository) Set(ctx context.Context, key, value string) (*model.AppSetting, error) {
	db := r.db.WithContext(ctx)
	var setting model.AppSetting
	err := db.Where("key = ?", key).First(&setting).Error
	switch {
	case err == nil:
	case err == gorm.ErrRecordNotFound:
		setting = model.AppSetting{Key: key}
	default:
		return nil, fmt.Errorf("find setting: %w", err)
	}
	setting.Value = value
	if err := db.Save(&setting).Error; err != nil {
		return nil, fmt.Errorf("save setting: %w", err)
	}
	return &setting, nil
}

func (r *SettingsRepository) ListAll(ctx context.Context) ([]model.AppSetting, error) {
	var settings []model.AppSetting
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// UpsertKpi overwrites the metric stored under key, inserting if absent.
func (r *SettingsRepository) UpsertKpi(ctx context.Context, key string, value, goal float64, updatedBy *string, now time.Time) (*model.KpiMetric, error) {
	db := r.db.WithContext(ctx)
	var metric model.KpiMetric
	err := db.Where("key = ?", key).First(&metric).Error
	switch {
	case err == nil:
	case err == gorm.ErrRecordNotFound:
		metric = model.KpiMetric{Key: key}
	default:
		return nil, fmt.Errorf("find kpi metric: %w", err)
	}
	metric.Value = value
	metric.Goal = goal
	metric.UpdatedBy = updatedBy
	metric.UpdatedAt = now
	if err := db.Save(&metric).Error; err != nil {
		return nil, fmt.Errorf("save kpi metric: %w", err)
	}
	return &metric, nil
}

func (r *SettingsRepository) ListKpis(ctx context.Context) ([]model.KpiMetric, error) {
	var metrics []model.KpiMetric
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}
