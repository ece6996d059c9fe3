package repository

import (
	"context"

	"gorm.io/gorm"

	"sales-activity-backend/internal/model"
)

type PhotoRepository interface {
	Create(ctx context.Context, photo *model.Photo) error
	FindByID(ctx context.Context, reportID, photoID uint) (*model.Photo, error)
	DeleteFromDraft(ctx context.Context, reportID, photoID uint) (bool, error)
}

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db}
}

func (r *photoRepository) Create(ctx context.Context, photo *model.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *photoRepository) FindByID(ctx context.Context, reportID, photoID uint) (*model.Photo, error) {
	var photo model.Photo
	err := r.db.WithContext(ctx).
		Where("id = ? AND call_report_id = ?", photoID, reportID).
		First(&photo).Error
	if err != nil {
		return nil, notFound(err, "photo", photoID)
	}
	return &photo, nil
}

// DeleteFromDraft removes the photo only while its parent report is DRAFT,
// checked in the same statement.
func (r *photoRepository) DeleteFromDraft(ctx context.Context, reportID, photoID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND call_report_id = ?", photoID, reportID).
		Where("EXISTS (SELECT 1 FROM call_reports cr WHERE cr.id = photos.call_report_id AND cr.status = ? AND cr.deleted_at IS NULL)", model.ReportDraft).
		Delete(&model.Photo{})
	return res.RowsAffected == 1, res.Error
}
