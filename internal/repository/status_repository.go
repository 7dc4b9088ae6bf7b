package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"branch-dashboard/internal/model"
)

// StatusRepository is the module-status ledger: one done flag per (module, civil date).
type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

// Upsert overwrites the done flag for (moduleName, date), inserting if absent.
// DoneAt is set to now when marking done, cleared otherwise.
func (r *StatusRepository) Upsert(ctx context.Context, moduleName, date string, isDone bool, doneBy *string, now time.Time) (*model.ModuleStatus, error) {
	db := r.db.WithContext(ctx)
	var status model.ModuleStatus
	err := db.Where("module_name = ? AND date = ?", moduleName, date).First(&status).Error
	switch {
	case err == nil:
	case err == gorm.ErrRecordNotFound:
		status = model.ModuleStatus{ModuleName: moduleName, Date: date}
	default:
		return nil, fmt.Errorf("find module status: %w", err)
	}

	status.IsDone = isDone
	status.DoneBy = doneBy
	if isDone {
		status.DoneAt = &now
	} else {
		status.DoneAt = nil
	}

	if err := db.Save(&status).Error; err != nil {
		return nil, fmt.Errorf("save module status: %w", err)
	}
	return &status, nil
}

// Get returns the ledger entry for (moduleName, date), or ErrNotFound.
func (r *StatusRepository) Get(ctx context.Context, moduleName, date string) (*model.ModuleStatus, error) {
	var status model.ModuleStatus
	if err := r.db.WithContext(ctx).
		Where("module_name = ? AND date = ?", moduleName, date).
		First(&status).Error; err != nil {
		return nil, mapErr(err)
	}
	return &status, nil
}

// ListForDate returns all ledger entries for one civil date.
func (r *StatusRepository) ListForDate(ctx context.Context, date string) ([]model.ModuleStatus, error) {
	var statuses []model.ModuleStatus
	if err := r.db.WithContext(ctx).Where("date = ?", date).Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}
