package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"branch-dashboard/internal/clock"
	"branch-dashboard/internal/model"
	"branch-dashboard/internal/repository"
	"branch-dashboard/internal/shared"
)

// CountdownDays is the fixed bodyshop window anchored at CountdownStart.
const CountdownDays = 7

// VehicleInput represents data required to register a bodyshop vehicle.
type VehicleInput struct {
	LicensePlate string
	Name         string
	Notes        string
	IsEv         bool
}

// VehiclePatch carries partial updates; nil fields are left untouched.
type VehiclePatch struct {
	LicensePlate       *string
	Name               *string
	Notes              *string
	IsEv               *bool
	ReadyForCollection *bool
	IsPast             *bool
}

// VehicleService owns the bodyshop vehicle lifecycle, including the collection-todo
// linkage and the per-day comment markers feeding the bodyshop progress module.
type VehicleService struct {
	vehicles *repository.VehicleRepository
	todos    *repository.TodoRepository
	cal      *clock.Calendar
	notifier Notifier
}

func NewVehicleService(vehicles *repository.VehicleRepository, todos *repository.TodoRepository, cal *clock.Calendar, notifier Notifier) *VehicleService {
	return &VehicleService{vehicles: vehicles, todos: todos, cal: cal, notifier: notifier}
}

func (s *VehicleService) Create(ctx context.Context, input VehicleInput) (*model.Vehicle, error) {
	plate := normalizePlate(input.LicensePlate)
	if plate == "" {
		return nil, shared.Invalid("licensePlate", "is required")
	}

	now := s.cal.Now()
	v := model.Vehicle{
		LicensePlate:   plate,
		Name:           input.Name,
		Notes:          input.Notes,
		IsEv:           input.IsEv,
		CountdownStart: now,
		CreatedAt:      now,
	}
	if err := s.vehicles.Create(ctx, &v); err != nil {
		return nil, err
	}
	s.notifier.Notify(ResourceVehicles)
	return &v, nil
}

// Update applies a partial update. A readyForCollection transition creates or
// removes the linked collection todo; the vehicle write and the todo write
// succeed or fail together from the caller's perspective.
func (s *VehicleService) Update(ctx context.Context, id uint, patch VehiclePatch) (*model.Vehicle, error) {
	v, err := s.vehicles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.LicensePlate != nil {
		plate := normalizePlate(*patch.LicensePlate)
		if plate == "" {
			return nil, shared.Invalid("licensePlate", "is required")
		}
		v.LicensePlate = plate
	}
	if patch.Name != nil {
		v.Name = *patch.Name
	}
	if patch.Notes != nil {
		v.Notes = *patch.Notes
	}
	if patch.IsEv != nil {
		v.IsEv = *patch.IsEv
	}
	if patch.IsPast != nil {
		v.IsPast = *patch.IsPast
	}

	var createdTodo *model.Todo
	if patch.ReadyForCollection != nil && *patch.ReadyForCollection != v.ReadyForCollection {
		if *patch.ReadyForCollection {
			todo := model.Todo{
				Title:             fmt.Sprintf("Collect %s", v.LicensePlate),
				AssignedTo:        model.RoleCounter,
				VehicleID:         &v.ID,
				IsSystemGenerated: true,
			}
			if err := s.todos.Create(ctx, &todo); err != nil {
				return nil, fmt.Errorf("create collection todo: %w", err)
			}
			createdTodo = &todo
			v.ReadyForCollection = true
			v.CollectionTodoID = &todo.ID
		} else {
			if v.CollectionTodoID != nil {
				if err := s.todos.Delete(ctx, *v.CollectionTodoID); err != nil && err != shared.ErrNotFound {
					return nil, fmt.Errorf("delete collection todo: %w", err)
				}
			}
			v.ReadyForCollection = false
			v.CollectionTodoID = nil
		}
	}

	if err := s.vehicles.Save(ctx, v); err != nil {
		// Do not leave an orphaned todo behind a failed vehicle write.
		if createdTodo != nil {
			_ = s.todos.Delete(ctx, createdTodo.ID)
		}
		return nil, err
	}

	s.notifier.Notify(ResourceVehicles)
	if patch.ReadyForCollection != nil {
		s.notifier.Notify(ResourceTodos)
	}
	return v, nil
}

func (s *VehicleService) Get(ctx context.Context, id uint) (*model.Vehicle, error) {
	return s.vehicles.FindByID(ctx, id)
}

func (s *VehicleService) ListActive(ctx context.Context) ([]model.Vehicle, error) {
	return s.vehicles.ListActive(ctx)
}

func (s *VehicleService) ListAll(ctx context.Context) ([]model.Vehicle, error) {
	return s.vehicles.ListAll(ctx)
}

func (s *VehicleService) Delete(ctx context.Context, id uint) error {
	if err := s.vehicles.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify(ResourceVehicles)
	return nil
}

// AddComment appends to the vehicle's history and marks it commented for today,
// which feeds the bodyshop module of the daily progress score.
func (s *VehicleService) AddComment(ctx context.Context, vehicleID uint, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, shared.Invalid("content", "is required")
	}
	if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
		return nil, err
	}

	comment := model.Comment{VehicleID: vehicleID, Content: content, CreatedAt: s.cal.Now()}
	if err := s.vehicles.AddComment(ctx, &comment); err != nil {
		return nil, err
	}
	if err := s.vehicles.UpsertDailyComment(ctx, vehicleID, s.cal.Today(), &comment.ID); err != nil {
		return nil, err
	}

	s.notifier.Notify(ResourceVehicles)
	return &comment, nil
}

func (s *VehicleService) ListComments(ctx context.Context, vehicleID uint) ([]model.Comment, error) {
	return s.vehicles.ListComments(ctx, vehicleID)
}

// DaysLeft returns the remaining whole days of the vehicle's 7-day window, floor 0.
func DaysLeft(v *model.Vehicle, now time.Time) int {
	elapsed := int(now.Sub(v.CountdownStart).Hours() / 24)
	left := CountdownDays - elapsed
	if left < 0 {
		return 0
	}
	return left
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
