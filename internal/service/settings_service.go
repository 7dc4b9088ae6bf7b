package service

import (
	"context"

	"branch-dashboard/internal/clock"
	"branch-dashboard/internal/model"
	"branch-dashboard/internal/repository"
	"branch-dashboard/internal/shared"
)

// SettingsService fronts the keyed settings store and the KPI metrics.
type SettingsService struct {
	settings *repository.SettingsRepository
	cal      *clock.Calendar
	notifier Notifier
}

func NewSettingsService(settings *repository.SettingsRepository, cal *clock.Calendar, notifier Notifier) *SettingsService {
	return &SettingsService{settings: settings, cal: cal, notifier: notifier}
}

func (s *SettingsService) Get(ctx context.Context, key string) (*model.AppSetting, error) {
	if key == "" {
		return nil, shared.Invalid("key", "is required")
	}
	return s.settings.Get(ctx, key)
}

func (s *SettingsService) Set(ctx context.Context, key, value string) (*model.AppSetting, error) {
	if key == "" {
		return nil, shared.Invalid("key", "is required")
	}
	setting, err := s.settings.Set(ctx, key, value)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ResourceSettings)
	return setting, nil
}

func (s *SettingsService) ListAll(ctx context.Context) ([]model.AppSetting, error) {
	return s.settings.ListAll(ctx)
}

// UpsertKpi overwrites the metric stored under key.
func (s *SettingsService) UpsertKpi(ctx context.Context, key string, value, goal float64, updatedBy *string) (*model.KpiMetric, error) {
	if key == "" {
		return nil, shared.Invalid("key", "is required")
	}
	metric, err := s.settings.UpsertKpi(ctx, key, value, goal, updatedBy, s.cal.Now())
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ResourceKpi)
	return metric, nil
}

func (s *SettingsService) ListKpis(ctx context.Context) ([]model.KpiMetric, error) {
	return s.settings.ListKpis(ctx)
}
