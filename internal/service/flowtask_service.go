package service

import (
	"context"

	"branch-dashboard/internal/clock"
	"branch-dashboard/internal/model"
	"branch-dashboard/internal/repository"
	"branch-dashboard/internal/shared"
)

// FlowTaskInput represents data required to create a flow task.
type FlowTaskInput struct {
	LicensePlate string
	IsEv         bool
	TaskType     string
	NeedAt       *string
	CreatedBy    *string
}

// FlowTaskPatch carries partial updates; nil fields are left untouched.
type FlowTaskPatch struct {
	Completed   *bool
	CompletedBy *string
	NeedsRetry  *bool
	NeedAt      *string
}

// FlowTaskService owns the turnaround flow board: append-ordered creation,
// bulk reordering, and the completed/retry exclusivity rule.
type FlowTaskService struct {
	flow     *repository.FlowTaskRepository
	cal      *clock.Calendar
	notifier Notifier
}

func NewFlowTaskService(flow *repository.FlowTaskRepository, cal *clock.Calendar, notifier Notifier) *FlowTaskService {
	return &FlowTaskService{flow: flow, cal: cal, notifier: notifier}
}

// Create appends a task to the board: priority = current max + 1, so default
// ordering is FIFO by creation.
func (s *FlowTaskService) Create(ctx context.Context, input FlowTaskInput) (*model.FlowTask, error) {
	plate := normalizePlate(input.LicensePlate)
	if plate == "" {
		return nil, shared.Invalid("licensePlate", "is required")
	}
	if !model.ValidFlowTaskType(input.TaskType) {
		return nil, shared.ErrUnknownTaskType
	}

	max, err := s.flow.MaxPriority(ctx)
	if err != nil {
		return nil, err
	}

	task := model.FlowTask{
		LicensePlate: plate,
		IsEv:         input.IsEv,
		TaskType:     input.TaskType,
		Priority:     max + 1,
		NeedAt:       input.NeedAt,
		CreatedBy:    input.CreatedBy,
		CreatedAt:    s.cal.Now(),
	}
	if err := s.flow.Create(ctx, &task); err != nil {
		return nil, err
	}
	s.notifier.Notify(ResourceFlow)
	return &task, nil
}

// Update applies a partial update. Completion and retry are mutually exclusive:
// completing clears the retry flag, flagging a retry clears all completion fields.
func (s *FlowTaskService) Update(ctx context.Context, id uint, patch FlowTaskPatch) (*model.FlowTask, error) {
	task, err := s.flow.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.NeedAt != nil {
		task.NeedAt = patch.NeedAt
	}

	if patch.Completed != nil {
		if *patch.Completed {
			now := s.cal.Now()
			task.Completed = true
			task.CompletedAt = &now
			task.CompletedBy = patch.CompletedBy
			task.NeedsRetry = false
		} else {
			task.Completed = false
			task.CompletedAt = nil
			task.CompletedBy = nil
		}
	}

	if patch.NeedsRetry != nil {
		if *patch.NeedsRetry {
			task.NeedsRetry = true
			task.Completed = false
			task.CompletedAt = nil
			task.CompletedBy = nil
		} else {
			task.NeedsRetry = false
		}
	}

	if err := s.flow.Save(ctx, task); err != nil {
		return nil, err
	}
	s.notifier.Notify(ResourceFlow)
	return task, nil
}

// Reorder rewrites priority = position for the caller-supplied id sequence.
func (s *FlowTaskService) Reorder(ctx context.Context, idsInOrder []uint) error {
	if len(idsInOrder) == 0 {
		return shared.Invalid("ids", "must not be empty")
	}
	if err := s.flow.Reorder(ctx, idsInOrder); err != nil {
		return err
	}
	s.notifier.Notify(ResourceFlow)
	return nil
}

func (s *FlowTaskService) List(ctx context.Context) ([]model.FlowTask, error) {
	return s.flow.ListOrdered(ctx)
}

// ListForDate returns tasks created on the given civil date, in manual order.
func (s *FlowTaskService) ListForDate(ctx context.Context, date string) ([]model.FlowTask, error) {
	start, end, err := s.cal.DayBounds(date)
	if err != nil {
		return nil, shared.Invalid("date", "expected YYYY-MM-DD")
	}
	return s.flow.ListBetween(ctx, start, end)
}

func (s *FlowTaskService) Delete(ctx context.Context, id uint) error {
	if err := s.flow.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify(ResourceFlow)
	return nil
}
