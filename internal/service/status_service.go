package service

import (
	"context"

	"branch-dashboard/internal/clock"
	"branch-dashboard/internal/model"
	"branch-dashboard/internal/repository"
	"branch-dashboard/internal/shared"
)

// StatusService is the thin front of the module-status ledger. It never decides
// doneness itself; the progress aggregator combines ledger flags with live data.
type StatusService struct {
	statuses *repository.StatusRepository
	cal      *clock.Calendar
	notifier Notifier
}

func NewStatusService(statuses *repository.StatusRepository, cal *clock.Calendar, notifier Notifier) *StatusService {
	return &StatusService{statuses: statuses, cal: cal, notifier: notifier}
}

// SetStatus upserts the done flag for (moduleName, date).
func (s *StatusService) SetStatus(ctx context.Context, moduleName, date string, isDone bool, doneBy *string) (*model.ModuleStatus, error) {
	if moduleName == "" {
		return nil, shared.Invalid("moduleName", "is required")
	}
	if !clock.ValidDate(date) {
		return nil, shared.Invalid("date", "expected YYYY-MM-DD")
	}
	status, err := s.statuses.Upsert(ctx, moduleName, date, isDone, doneBy, s.cal.Now())
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ResourceStatus)
	return status, nil
}

// GetStatuses returns all ledger entries for one civil date.
func (s *StatusService) GetStatuses(ctx context.Context, date string) ([]model.ModuleStatus, error) {
	if !clock.ValidDate(date) {
		return nil, shared.Invalid("date", "expected YYYY-MM-DD")
	}
	return s.statuses.ListForDate(ctx, date)
}
