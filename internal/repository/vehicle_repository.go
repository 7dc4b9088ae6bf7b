package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"branch-dashboard/internal/model"
)

// VehicleRepository handles CRUD for vehicles, their comments and the
// per-day comment markers.
type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *model.Vehicle) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("create vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id uint) (*model.Vehicle, error) {
	var v model.Vehicle
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &v, nil
}

func (r *VehicleRepository) Save(ctx context.Context, v *model.Vehicle) error {
	if err := r.db.WithContext(ctx).Save(v).Error; err != nil {
		return fmt.Errorf("save vehicle: %w", err)
	}
	return nil
}

// ListActive returns vehicles that have not left the bodyshop set, oldest first.
func (r *VehicleRepository) ListActive(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).Where("is_past = ?", false).
		Order("created_at ASC").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *VehicleRepository) ListAll(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Delete removes a vehicle and cascades to its comments and daily markers.
func (r *VehicleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Vehicle{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete vehicle: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return mapErr(gorm.ErrRecordNotFound)
		}
		if err := tx.Where("vehicle_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return fmt.Errorf("delete vehicle comments: %w", err)
		}
		if err := tx.Where("vehicle_id = ?", id).Delete(&model.VehicleDailyComment{}).Error; err != nil {
			return fmt.Errorf("delete vehicle daily markers: %w", err)
		}
		return nil
	})
}

func (r *VehicleRepository) AddComment(ctx context.Context, c *model.Comment) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *VehicleRepository) ListComments(ctx context.Context, vehicleID uint) ([]model.Comment, error) {
	var comments []model.Comment
	if err := r.db.WithContext(ctx).Where("vehicle_id = ?", vehicleID).
		Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// UpsertDailyComment marks the (vehicle, date) pair as commented.
func (r *VehicleRepository) UpsertDailyComment(ctx context.Context, vehicleID uint, date string, commentID *uint) error {
	db := r.db.WithContext(ctx)
	var marker model.VehicleDailyComment
	err := db.Where("vehicle_id = ? AND date = ?", vehicleID, date).First(&marker).Error
	switch {
	case err == nil:
		marker.HasComment = true
		marker.CommentID = commentID
		if err := db.Save(&marker).Error; err != nil {
			return fmt.Errorf("update daily comment: %w", err)
		}
		return nil
	case err == gorm.ErrRecordNotFound:
		marker = model.VehicleDailyComment{
			VehicleID:  vehicleID,
			Date:       date,
			HasComment: true,
			CommentID:  commentID,
		}
		if err := db.Create(&marker).Error; err != nil {
			return fmt.Errorf("create daily comment: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("find daily comment: %w", err)
	}
}

// ListDailyComments returns the comment markers for one civil date.
func (r *VehicleRepository) ListDailyComments(ctx context.Context, date string) ([]model.VehicleDailyComment, error) {
	var markers []model.VehicleDailyComment
	if err := r.db.WithContext(ctx).Where("date = ?", date).Find(&markers).Error; err != nil {
		return nil, err
	}
	return markers, nil
}
