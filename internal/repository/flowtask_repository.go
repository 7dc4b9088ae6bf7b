package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"branch-dashboard/internal/model"
)

// FlowTaskRepository handles CRUD and ordering for flow tasks.
type FlowTaskRepository struct {
	db *gorm.DB
}

func NewFlowTaskRepository(db *gorm.DB) *FlowTaskRepository {
	return &FlowTaskRepository{db: db}
}

func (r *FlowTaskRepository) Create(ctx context.Context, task *model.FlowTask) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create flow task: %w", err)
	}
	return nil
}

func (r *FlowTaskRepository) FindByID(ctx context.Context, id uint) (*model.FlowTask, error) {
	var task model.FlowTask
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &task, nil
}

func (r *FlowTaskRepository) Save(ctx context.Context, task *model.FlowTask) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save flow task: %w", err)
	}
	return nil
}

func (r *FlowTaskRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.FlowTask{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete flow task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return mapErr(gorm.ErrRecordNotFound)
	}
	return nil
}

// ListOrdered returns all flow tasks in manual order.
func (r *FlowTaskRepository) ListOrdered(ctx context.Context) ([]model.FlowTask, error) {
	var tasks []model.FlowTask
	if err := r.db.WithContext(ctx).Order("priority ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListBetween returns flow tasks created within [start, end), in manual order.
func (r *FlowTaskRepository) ListBetween(ctx context.Context, start, end time.Time) ([]model.FlowTask, error) {
	var tasks []model.FlowTask
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("priority ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// MaxPriority returns the current highest priority, 0 when no tasks exist.
func (r *FlowTaskRepository) MaxPriority(ctx context.Context) (int, error) {
	var max *int
	if err := r.db.WithContext(ctx).Model(&model.FlowTask{}).
		Select("MAX(priority)").Scan(&max).Error; err != nil {
		return 0, fmt.Errorf("max flow priority: %w", err)
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// Reorder rewrites priority = position for the given id sequence in one transaction.
func (r *FlowTaskRepository) Reorder(ctx context.Context, idsInOrder []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range idsInOrder {
			if err := tx.Model(&model.FlowTask{}).Where("id = ?", id).
				Update("priority", i+1).Error; err != nil {
				return fmt.Errorf("reorder flow task %d: %w", id, err)
			}
		}
		return nil
	})
}

// DeleteCompletedBefore purges completed flow tasks created before the cutoff.
func (r *FlowTaskRepository) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) error {
	if err := r.db.WithContext(ctx).
		Where("completed = ? AND created_at < ?", true, cutoff).
		Delete(&model.FlowTask{}).Error; err != nil {
		return fmt.Errorf("purge completed flow tasks: %w", err)
	}
	return nil
}
