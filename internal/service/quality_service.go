package service

import (
	"context"
	"fmt"

	"branch-dashboard/internal/clock"
	"branch-dashboard/internal/model"
	"branch-dashboard/internal/repository"
	"branch-dashboard/internal/shared"
)

// QualityTarget is the flat number of checks per day that counts as done,
// independent of the pass/fail mix.
const QualityTarget = 5

// QualityCheckInput represents data required to record a quality check.
type QualityCheckInput struct {
	LicensePlate string
	IsEv         bool
	Passed       bool
	Comment      string
	CheckedBy    *string
}

// QualityService records quality checks and spawns driver tasks from failures.
type QualityService struct {
	quality  *repository.QualityRepository
	cal      *clock.Calendar
	notifier Notifier
}

func NewQualityService(quality *repository.QualityRepository, cal *clock.Calendar, notifier Notifier) *QualityService {
	return &QualityService{quality: quality, cal: cal, notifier: notifier}
}

// CreateCheck records a check. A failed check synchronously spawns exactly one
// driver task, defaulting its description when no comment was supplied.
func (s *QualityService) CreateCheck(ctx context.Context, input QualityCheckInput) (*model.QualityCheck, error) {
	plate := normalizePlate(input.LicensePlate)
	if plate == "" {
		return nil, shared.Invalid("licensePlate", "is required")
	}

	check := model.QualityCheck{
		LicensePlate: plate,
		IsEv:         input.IsEv,
		Passed:       input.Passed,
		Comment:      input.Comment,
		CheckedBy:    input.CheckedBy,
		CreatedAt:    s.cal.Now(),
	}
	if err := s.quality.CreateCheck(ctx, &check); err != nil {
		return nil, err
	}

	if !input.Passed {
		description := input.Comment
		if description == "" {
			description = fmt.Sprintf("Quality check failed for %s", plate)
		}
		task := model.DriverTask{
			QualityCheckID: check.ID,
			LicensePlate:   plate,
			Description:    description,
			CreatedAt:      check.CreatedAt,
		}
		if err := s.quality.CreateDriverTask(ctx, &task); err != nil {
			return nil, fmt.Errorf("spawn driver task: %w", err)
		}
	}

	s.notifier.Notify(ResourceQuality)
	return &check, nil
}

// ListChecksForDate returns checks whose creation instant falls on the given civil date.
func (s *QualityService) ListChecksForDate(ctx context.Context, date string) ([]model.QualityCheck, error) {
	start, end, err := s.cal.DayBounds(date)
	if err != nil {
		return nil, shared.Invalid("date", "expected YYYY-MM-DD")
	}
	return s.quality.ListChecksBetween(ctx, start, end)
}

func (s *QualityService) DeleteCheck(ctx context.Context, id uint) error {
	if err := s.quality.DeleteCheck(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify(ResourceQuality)
	return nil
}

func (s *QualityService) ListOpenDriverTasks(ctx context.Context) ([]model.DriverTask, error) {
	return s.quality.ListOpenDriverTasks(ctx)
}

// CompleteDriverTask marks a driver task done by the given actor.
func (s *QualityService) CompleteDriverTask(ctx context.Context, id uint, completedBy *string) (*model.DriverTask, error) {
	task, err := s.quality.FindDriverTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.cal.Now()
	task.Completed = true
	task.CompletedAt = &now
	task.CompletedBy = completedBy
	if err := s.quality.SaveDriverTask(ctx, task); err != nil {
		return nil, err
	}
	s.notifier.Notify(ResourceQuality)
	return task, nil
}
