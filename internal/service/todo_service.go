package service

import (
	"context"
	"fmt"

	"branch-dashboard/internal/clock"
	"branch-dashboard/internal/model"
	"branch-dashboard/internal/repository"
	"branch-dashboard/internal/shared"
)

// TodoInput represents data required to create a todo.
type TodoInput struct {
	Title       string
	AssignedTo  []string
	IsRecurring bool
	Priority    int
}

// TodoPatch carries partial updates; nil fields are left untouched.
type TodoPatch struct {
	Title       *string
	AssignedTo  []string
	Completed   *bool
	CompletedBy *string
	Priority    *int
}

// TodoService owns the todo lifecycle: completion side effects on linked
// vehicles and the one-shot postponement rule for system-generated todos.
type TodoService struct {
	todos    *repository.TodoRepository
	vehicles *repository.VehicleRepository
	cal      *clock.Calendar
	notifier Notifier
}

func NewTodoService(todos *repository.TodoRepository, vehicles *repository.VehicleRepository, cal *clock.Calendar, notifier Notifier) *TodoService {
	return &TodoService{todos: todos, vehicles: vehicles, cal: cal, notifier: notifier}
}

func (s *TodoService) Create(ctx context.Context, input TodoInput) (*model.Todo, error) {
	if input.Title == "" {
		return nil, shared.Invalid("title", "is required")
	}
	if err := validateRoles(input.AssignedTo); err != nil {
		return nil, err
	}
	if input.Priority < 0 || input.Priority > 3 {
		return nil, shared.Invalid("priority", "must be between 0 and 3")
	}

	todo := model.Todo{
		Title:       input.Title,
		AssignedTo:  model.JoinRoles(input.AssignedTo),
		IsRecurring: input.IsRecurring,
		Priority:    input.Priority,
		CreatedAt:   s.cal.Now(),
	}
	if err := s.todos.Create(ctx, &todo); err != nil {
		return nil, err
	}
	s.notifier.Notify(ResourceTodos)
	return &todo, nil
}

// Update applies a partial update. Completing a system-generated todo that is
// linked to a vehicle marks that vehicle as past; this is the only automatic
// exit from the active bodyshop set.
func (s *TodoService) Update(ctx context.Context, id uint, patch TodoPatch) (*model.Todo, error) {
	todo, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, shared.Invalid("title", "is required")
		}
		todo.Title = *patch.Title
	}
	if patch.AssignedTo != nil {
		if err := validateRoles(patch.AssignedTo); err != nil {
			return nil, err
		}
		todo.AssignedTo = model.JoinRoles(patch.AssignedTo)
	}
	if patch.Priority != nil {
		if *patch.Priority < 0 || *patch.Priority > 3 {
			return nil, shared.Invalid("priority", "must be between 0 and 3")
		}
		todo.Priority = *patch.Priority
	}

	completing := patch.Completed != nil && *patch.Completed && !todo.Completed
	if patch.Completed != nil {
		if *patch.Completed {
			now := s.cal.Now()
			todo.Completed = true
			todo.CompletedAt = &now
			todo.CompletedBy = patch.CompletedBy
		} else {
			todo.Completed = false
			todo.CompletedAt = nil
			todo.CompletedBy = nil
		}
	}

	if err := s.todos.Save(ctx, todo); err != nil {
		return nil, err
	}

	if completing && todo.IsSystemGenerated && todo.VehicleID != nil {
		vehicle, err := s.vehicles.FindByID(ctx, *todo.VehicleID)
		if err == nil {
			vehicle.IsPast = true
			if err := s.vehicles.Save(ctx, vehicle); err != nil {
				return nil, fmt.Errorf("mark vehicle past: %w", err)
			}
			s.notifier.Notify(ResourceVehicles)
		} else if err != shared.ErrNotFound {
			return nil, err
		}
	}

	s.notifier.Notify(ResourceTodos)
	return todo, nil
}

// Postpone pushes a system-generated todo to tomorrow. Allowed exactly once;
// a second attempt is a validation failure, not a no-op.
func (s *TodoService) Postpone(ctx context.Context, id uint) (*model.Todo, error) {
	todo, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !todo.IsSystemGenerated {
		return nil, shared.Invalid("id", "only system-generated todos can be postponed")
	}
	if todo.PostponeCount >= 1 {
		return nil, shared.ErrPostponeLimit
	}

	tomorrow := s.cal.Tomorrow()
	todo.PostponedToDate = &tomorrow
	todo.PostponeCount++
	if err := s.todos.Save(ctx, todo); err != nil {
		return nil, err
	}

	s.notifier.Notify(ResourceTodos)
	return todo, nil
}

func (s *TodoService) Get(ctx context.Context, id uint) (*model.Todo, error) {
	return s.todos.FindByID(ctx, id)
}

func (s *TodoService) ListForDate(ctx context.Context, date string) ([]model.Todo, error) {
	if !clock.ValidDate(date) {
		return nil, shared.Invalid("date", "expected YYYY-MM-DD")
	}
	return s.todos.ListForDate(ctx, date)
}

func (s *TodoService) ListToday(ctx context.Context) ([]model.Todo, error) {
	return s.todos.ListForDate(ctx, s.cal.Today())
}

func (s *TodoService) Delete(ctx context.Context, id uint) error {
	if err := s.todos.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify(ResourceTodos)
	return nil
}

func validateRoles(roles []string) error {
	for _, role := range roles {
		if role != model.RoleCounter && role != model.RoleDriver {
			return shared.Invalid("assignedTo", fmt.Sprintf("unknown role %q", role))
		}
	}
	return nil
}
