package repository

import (
	"context"

	"gorm.io/gorm"

	"sales-activity-backend/internal/access"
	"sales-activity-backend/internal/model"
)

type CallReportRepository interface {
	Create(ctx context.Context, report *model.CallReport) error
	FindByID(ctx context.Context, id uint) (*model.CallReport, error)
	List(ctx context.Context, filter access.ListFilter, q RecordQuery) ([]model.CallReport, error)
	UpdateDraft(ctx context.Context, report *model.CallReport, activities []model.Activity) (bool, error)
	DeleteDraft(ctx context.Context, id uint) (bool, error)
	RecordCheckOut(ctx context.Context, id uint, values map[string]any) (bool, error)
	Transition(ctx context.Context, id uint, from model.ReportStatus, values map[string]any) (bool, error)
}

type callReportRepository struct {
	db *gorm.DB
}

func NewCallReportRepository(db *gorm.DB) CallReportRepository {
	return &callReportRepository{db}
}

func (r *callReportRepository) Create(ctx context.Context, report *model.CallReport) error {
	return r.db.WithContext(ctx).Omit("SR", "Customer", "Contact", "Photos").Create(report).Error
}

func (r *callReportRepository) FindByID(ctx context.Context, id uint) (*model.CallReport, error) {
	var report model.CallReport
	err := r.db.WithContext(ctx).
		Preload("ActivitiesDone").Preload("Photos").
		Preload("SR").Preload("Customer").Preload("Contact").
		First(&report, id).Error
	if err != nil {
		return nil, notFound(err, "call report", id)
	}
	return &report, nil
}

func (r *callReportRepository) List(ctx context.Context, filter access.ListFilter, q RecordQuery) ([]model.CallReport, error) {
	var list []model.CallReport
	err := r.db.WithContext(ctx).
		Scopes(ownedBy(filter, "sr_id"), matching(q, "sr_id", "call_date")).
		Preload("SR").Preload("Customer").Preload("ActivitiesDone").
		Order("call_date desc, id desc").
		Find(&list).Error
	return list, err
}

// UpdateDraft writes the feedback fields and replaces activities_done in one
// transaction, only while the report is still DRAFT.
func (r *callReportRepository) UpdateDraft(ctx context.Context, report *model.CallReport, activities []model.Activity) (bool, error) {
	updated := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.CallReport{}).
			Where("id = ? AND status = ?", report.ID, model.ReportDraft).
			Updates(map[string]any{
				"contact_id":          report.ContactID,
				"call_objective":      report.CallObjective,
				"customer_response":   report.CustomerResponse,
				"customer_request":    report.CustomerRequest,
				"customer_objections": report.CustomerObjections,
				"competitor_info":     report.CompetitorInfo,
				"next_action":         report.NextAction,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return nil
		}
		updated = true
		if activities == nil {
			return nil
		}
		return tx.Model(report).Association("ActivitiesDone").Replace(activities)
	})
	return updated, err
}

func (r *callReportRepository) DeleteDraft(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND status = ?", id, model.ReportDraft).Delete(&model.CallReport{})
		if res.Error != nil || res.RowsAffected != 1 {
			return res.Error
		}
		deleted = true
		return tx.Where("call_report_id = ?", id).Delete(&model.Photo{}).Error
	})
	return deleted, err
}

// RecordCheckOut sets check-out fields once, on a DRAFT report without a prior check-out.
func (r *callReportRepository) RecordCheckOut(ctx context.Context, id uint, values map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.CallReport{}).
		Where("id = ? AND status = ? AND check_out_time IS NULL", id, model.ReportDraft).
		Updates(values)
	return res.RowsAffected == 1, res.Error
}

func (r *callReportRepository) Transition(ctx context.Context, id uint, from model.ReportStatus, values map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.CallReport{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	return res.RowsAffected == 1, res.Error
}
