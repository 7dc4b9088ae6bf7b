package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"branch-dashboard/internal/model"
)

// QualityRepository handles quality checks and the driver tasks spawned from them.
type QualityRepository struct {
	db *gorm.DB
}

func NewQualityRepository(db *gorm.DB) *QualityRepository {
	return &QualityRepository{db: db}
}

func (r *QualityRepository) CreateCheck(ctx context.Context, check *model.QualityCheck) error {
	if err := r.db.WithContext(ctx).Create(check).Error; err != nil {
		return fmt.Errorf("create quality check: %w", err)
	}
	return nil
}

func (r *QualityRepository) FindCheckByID(ctx context.Context, id uint) (*model.QualityCheck, error) {
	var check model.QualityCheck
	if err := r.db.WithContext(ctx).First(&check, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &check, nil
}

// ListChecksBetween returns checks created within [start, end), newest first.
// Callers derive the bounds from a civil date so timezone handling stays in one place.
func (r *QualityRepository) ListChecksBetween(ctx context.Context, start, end time.Time) ([]model.QualityCheck, error) {
	var checks []model.QualityCheck
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at DESC").
		Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}

// DeleteCheck removes a check and cascades to its driver tasks.
func (r *QualityRepository) DeleteCheck(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.QualityCheck{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete quality check: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return mapErr(gorm.ErrRecordNotFound)
		}
		if err := tx.Where("quality_check_id = ?", id).Delete(&model.DriverTask{}).Error; err != nil {
			return fmt.Errorf("delete driver tasks: %w", err)
		}
		return nil
	})
}

func (r *QualityRepository) CreateDriverTask(ctx context.Context, task *model.DriverTask) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create driver task: %w", err)
	}
	return nil
}

func (r *QualityRepository) FindDriverTaskByID(ctx context.Context, id uint) (*model.DriverTask, error) {
	var task model.DriverTask
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &task, nil
}

func (r *QualityRepository) SaveDriverTask(ctx context.Context, task *model.DriverTask) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save driver task: %w", err)
	}
	return nil
}

func (r *QualityRepository) ListOpenDriverTasks(ctx context.Context) ([]model.DriverTask, error) {
	var tasks []model.DriverTask
	if err := r.db.WithContext(ctx).Where("completed = ?", false).
		Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *QualityRepository) ListDriverTasksForCheck(ctx context.Context, checkID uint) ([]model.DriverTask, error) {
	var tasks []model.DriverTask
	if err := r.db.WithContext(ctx).Where("quality_check_id = ?", checkID).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
