package repository

import (
	"context"

	"gorm.io/gorm"

	"sales-activity-backend/internal/access"
	"sales-activity-backend/internal/model"
)

type PreCallPlanRepository interface {
	Create(ctx context.Context, plan *model.PreCallPlan) error
	FindByID(ctx context.Context, id uint) (*model.PreCallPlan, error)
	List(ctx context.Context, filter access.ListFilter, q RecordQuery) ([]model.PreCallPlan, error)
	UpdateDraft(ctx context.Context, plan *model.PreCallPlan) (bool, error)
	DeleteDraft(ctx context.Context, id uint) (bool, error)
	Transition(ctx context.Context, id uint, from model.PlanStatus, values map[string]any) (bool, error)
}

type preCallPlanRepository struct {
	db *gorm.DB
}

func NewPreCallPlanRepository(db *gorm.DB) PreCallPlanRepository {
	return &preCallPlanRepository{db}
}

func (r *preCallPlanRepository) Create(ctx context.Context, plan *model.PreCallPlan) error {
	return r.db.WithContext(ctx).Omit("SR", "Customer", "Contact").Create(plan).Error
}

func (r *preCallPlanRepository) FindByID(ctx context.Context, id uint) (*model.PreCallPlan, error) {
	var plan model.PreCallPlan
	err := r.db.WithContext(ctx).
		Preload("SR").Preload("Customer").Preload("Contact").
		First(&plan, id).Error
	if err != nil {
		return nil, notFound(err, "pre-call plan", id)
	}
	return &plan, nil
}

func (r *preCallPlanRepository) List(ctx context.Context, filter access.ListFilter, q RecordQuery) ([]model.PreCallPlan, error) {
	var list []model.PreCallPlan
	err := r.db.WithContext(ctx).
		Scopes(ownedBy(filter, "sr_id"), matching(q, "sr_id", "plan_date")).
		Preload("SR").Preload("Customer").Preload("Contact").
		Order("plan_date desc, id desc").
		Find(&list).Error
	return list, err
}

// UpdateDraft writes the editable fields only while the plan is still DRAFT.
// A false result means the plan left DRAFT (or vanished) concurrently.
func (r *preCallPlanRepository) UpdateDraft(ctx context.Context, plan *model.PreCallPlan) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.PreCallPlan{}).
		Where("id = ? AND status = ?", plan.ID, model.PlanDraft).
		Updates(map[string]any{
			"customer_id": plan.CustomerID,
			"contact_id":  plan.ContactID,
			"plan_date":   plan.PlanDate,
			"objectives":  plan.Objectives,
			"notes":       plan.Notes,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *preCallPlanRepository) DeleteDraft(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, model.PlanDraft).
		Delete(&model.PreCallPlan{})
	return res.RowsAffected == 1, res.Error
}

// Transition is a single conditional UPDATE ... WHERE id = ? AND status = ?.
func (r *preCallPlanRepository) Transition(ctx context.Context, id uint, from model.PlanStatus, values map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.PreCallPlan{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	return res.RowsAffected == 1, res.Error
}
