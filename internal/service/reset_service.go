package service

import (
	"context"

	"go.uber.org/zap"

	"branch-dashboard/internal/clock"
	"branch-dashboard/internal/repository"
)

// ResetService performs the midnight cleanup: ephemeral per-day state is cleared
// so the new civil day starts fresh. Date-keyed history is never touched.
type ResetService struct {
	todos    *repository.TodoRepository
	flow     *repository.FlowTaskRepository
	cal      *clock.Calendar
	notifier Notifier
	log      *zap.SugaredLogger
}

func NewResetService(todos *repository.TodoRepository, flow *repository.FlowTaskRepository, cal *clock.Calendar, notifier Notifier, log *zap.SugaredLogger) *ResetService {
	return &ResetService{todos: todos, flow: flow, cal: cal, notifier: notifier, log: log}
}

// Run executes one reset cycle. Failures are logged and swallowed: the scheduler
// has no caller to report to and must keep running.
func (s *ResetService) Run(ctx context.Context) {
	dayStart, _, err := s.cal.DayBounds(s.cal.Today())
	if err != nil {
		s.log.Errorw("midnight reset skipped", "error", err)
		return
	}

	if err := s.todos.DeleteCompletedBefore(ctx, dayStart); err != nil {
		s.log.Errorw("purge completed todos", "error", err)
	}
	if err := s.todos.ResetRecurring(ctx); err != nil {
		s.log.Errorw("reset recurring todos", "error", err)
	}
	if err := s.flow.DeleteCompletedBefore(ctx, dayStart); err != nil {
		s.log.Errorw("purge completed flow tasks", "error", err)
	}

	s.notifier.Notify(ResourceReset)
	s.log.Infow("midnight reset complete", "date", s.cal.Today())
}
