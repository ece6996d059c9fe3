package repository

import (
	"context"

	"gorm.io/gorm"

	"sales-activity-backend/internal/access"
	"sales-activity-backend/internal/model"
)

// RatingTotals is the raw aggregate per SR; the mean is computed by the caller.
type RatingTotals struct {
	SRID  uint `gorm:"column:sr_id"`
	Sum   int64
	Count int64
}

// CoachingRepository is append-only: there is no update or delete.
type CoachingRepository interface {
	Create(ctx context.Context, record *model.CoachingRecord) error
	ListByReport(ctx context.Context, reportID uint) ([]model.CoachingRecord, error)
	RatingTotalsBySR(ctx context.Context, filter access.ListFilter) ([]RatingTotals, error)
}

type coachingRepository struct {
	db *gorm.DB
}

func NewCoachingRepository(db *gorm.DB) CoachingRepository {
	return &coachingRepository{db}
}

func (r *coachingRepository) Create(ctx context.Context, record *model.CoachingRecord) error {
	return r.db.WithContext(ctx).Omit("Manager").Create(record).Error
}

func (r *coachingRepository) ListByReport(ctx context.Context, reportID uint) ([]model.CoachingRecord, error) {
	var list []model.CoachingRecord
	err := r.db.WithContext(ctx).
		Where("call_report_id = ?", reportID).
		Preload("Manager").
		Order("created_at asc, id asc").
		Find(&list).Error
	return list, err
}

func (r *coachingRepository) RatingTotalsBySR(ctx context.Context, filter access.ListFilter) ([]RatingTotals, error) {
	var rows []RatingTotals
	err := r.db.WithContext(ctx).Table("coaching_records").
		Joins("JOIN call_reports ON call_reports.id = coaching_records.call_report_id").
		Where("call_reports.status = ? AND call_reports.deleted_at IS NULL", model.ReportSubmitted).
		Where("coaching_records.rating IS NOT NULL").
		Scopes(ownedBy(filter, "call_reports.sr_id")).
		Group("call_reports.sr_id").
		Select("call_reports.sr_id AS sr_id, SUM(coaching_records.rating) AS sum, COUNT(coaching_records.rating) AS count").
		Order("call_reports.sr_id").
		Scan(&rows).Error
	return rows, err
}
