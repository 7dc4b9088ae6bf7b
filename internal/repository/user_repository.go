package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"branch-dashboard/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return mapErr(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("initials ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindAdmin returns the Branch Manager user, or ErrNotFound if none was seeded yet.
func (r *UserRepository) FindAdmin(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("is_admin = ?", true).First(&user).Error; err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}
