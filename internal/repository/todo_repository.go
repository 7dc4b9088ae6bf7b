package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"branch-dashboard/internal/model"
)

// TodoRepository handles CRUD for todos.
type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id uint) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.WithContext(ctx).First(&todo, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &todo, nil
}

func (r *TodoRepository) Save(ctx context.Context, todo *model.Todo) error {
	if err := r.db.WithContext(ctx).Save(todo).Error; err != nil {
		return fmt.Errorf("save todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Todo{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete todo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return mapErr(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *TodoRepository) ListAll(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := r.db.WithContext(ctx).Order("priority DESC, created_at ASC, id ASC").
		Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// ListForDate returns todos belonging to the given civil day: anything not postponed,
// plus anything postponed to that date or earlier.
func (r *TodoRepository) ListForDate(ctx context.Context, date string) ([]model.Todo, error) {
	var todos []model.Todo
	if err := r.db.WithContext(ctx).
		Where("postponed_to_date IS NULL OR postponed_to_date <= ?", date).
		Order("priority DESC, created_at ASC, id ASC").
		Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// ListPostponedBeyond returns todos pushed to a date after the given one.
func (r *TodoRepository) ListPostponedBeyond(ctx context.Context, date string) ([]model.Todo, error) {
	var todos []model.Todo
	if err := r.db.WithContext(ctx).
		Where("postponed_to_date IS NOT NULL AND postponed_to_date > ?", date).
		Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// DeleteCompletedBefore removes completed non-recurring todos created before the
// given instant. Used by the midnight reset.
func (r *TodoRepository) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) error {
	if err := r.db.WithContext(ctx).
		Where("completed = ? AND is_recurring = ? AND created_at < ?", true, false, cutoff).
		Delete(&model.Todo{}).Error; err != nil {
		return fmt.Errorf("purge completed todos: %w", err)
	}
	return nil
}

// ResetRecurring reopens every recurring todo for the new day.
func (r *TodoRepository) ResetRecurring(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Model(&model.Todo{}).
		Where("is_recurring = ? AND completed = ?", true, true).
		Updates(map[string]interface{}{
			"completed":    false,
			"completed_by": nil,
			"completed_at": nil,
		}).Error; err != nil {
		return fmt.Errorf("reset recurring todos: %w", err)
	}
	return nil
}
