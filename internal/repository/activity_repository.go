package repository

import (
	"context"

	"gorm.io/gorm"

	"sales-activity-backend/internal/model"
)

type ActivityRepository interface {
	GetAll(ctx context.Context) ([]model.Activity, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Activity, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db}
}

func (r *activityRepository) GetAll(ctx context.Context) ([]model.Activity, error) {
	var list []model.Activity
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("code").Find(&list).Error
	return list, err
}

func (r *activityRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Activity, error) {
	var list []model.Activity
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}
