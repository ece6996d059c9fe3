package usecase

import (
	"context"
	"fmt"
	"time"

	"sales-activity-backend/internal/access"
	"sales-activity-backend/internal/apperror"
	"sales-activity-backend/internal/model"
	"sales-activity-backend/internal/repository"
)

type PlanInput struct {
	CustomerID uint
	ContactID  uint
	PlanDate   time.Time
	Objectives string
	Notes      string
}

type PlanDecision struct {
	Approve         bool
	RejectionReason string
}

// PreCallPlanUsecase drives DRAFT -> PENDING -> APPROVED | REJECTED.
type PreCallPlanUsecase struct {
	plans     repository.PreCallPlanRepository
	users     repository.UserRepository
	customers repository.CustomerRepository
	policy    *access.Policy
	notifier  Notifier
	locker    Locker
	clock     Clock
}

func NewPreCallPlanUsecase(
	plans repository.PreCallPlanRepository,
	users repository.UserRepository,
	customers repository.CustomerRepository,
	policy *access.Policy,
	notifier Notifier,
	locker Locker,
	clock Clock,
) *PreCallPlanUsecase {
	return &PreCallPlanUsecase{
		plans:     plans,
		users:     users,
		customers: customers,
		policy:    policy,
		notifier:  notifier,
		locker:    locker,
		clock:     clock,
	}
}

func (u *PreCallPlanUsecase) Create(ctx context.Context, srID uint, in PlanInput) (*model.PreCallPlan, error) {
	sr, err := loadActor(ctx, u.users, srID)
	if err != nil {
		return nil, err
	}
	if err := access.EnsureCallActivityAccess(sr.Role); err != nil {
		return nil, err
	}

	customer, contact, err := u.customerAndContact(ctx, in.CustomerID, in.ContactID)
	if err != nil {
		return nil, err
	}

	plan := &model.PreCallPlan{
		SRID:       sr.ID,
		CustomerID: customer.ID,
		ContactID:  contact.ID,
		PlanDate:   in.PlanDate,
		Objectives: in.Objectives,
		Notes:      in.Notes,
		Status:     model.PlanDraft,
	}
	if err := u.plans.Create(ctx, plan); err != nil {
		return nil, err
	}

	plan.SR = *sr
	plan.Customer = *customer
	plan.Contact = *contact
	return plan, nil
}

func (u *PreCallPlanUsecase) Get(ctx context.Context, actorID, id uint) (*model.PreCallPlan, error) {
	actor, err := loadActor(ctx, u.users, actorID)
	if err != nil {
		return nil, err
	}
	if err := access.EnsureCallActivityAccess(actor.Role); err != nil {
		return nil, err
	}

	plan, err := u.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.policy.EnsureCanView(ctx, actor, plan.SRID); err != nil {
		return nil, err
	}
	return plan, nil
}

func (u *PreCallPlanUsecase) List(ctx context.Context, actorID uint, q repository.RecordQuery) ([]model.PreCallPlan, error) {
	actor, err := loadActor(ctx, u.users, actorID)
	if err != nil {
		return nil, err
	}
	filter, err := u.policy.ListFilterFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	return u.plans.List(ctx, filter, q)
}

// ListPendingApproval is the approver inbox: PENDING plans in scope that the
// actor did not write.
func (u *PreCallPlanUsecase) ListPendingApproval(ctx context.Context, actorID uint) ([]model.PreCallPlan, error) {
	actor, err := loadActor(ctx, u.users, actorID)
	if err != nil {
		return nil, err
	}
	filter, err := u.policy.ListFilterFor(ctx, actor)
	if err != nil {
		return nil, err
	}

	plans, err := u.plans.List(ctx, filter, repository.RecordQuery{Status: string(model.PlanPending)})
	if err != nil {
		return nil, err
	}

	inbox := make([]model.PreCallPlan, 0, len(plans))
	for _, p := range plans {
		if p.SRID != actor.ID {
			inbox = append(inbox, p)
		}
	}
	return inbox, nil
}

func (u *PreCallPlanUsecase) Update(ctx context.Context, actorID, id uint, in PlanInput) (*model.PreCallPlan, error) {
	actor, plan, err := u.loadOwnedDraft(ctx, actorID, id, "update")
	if err != nil {
		return nil, err
	}

	customer, contact, err := u.customerAndContact(ctx, in.CustomerID, in.ContactID)
	if err != nil {
		return nil, err
	}

	plan.CustomerID = customer.ID
	plan.ContactID = contact.ID
	plan.PlanDate = in.PlanDate
	plan.Objectives = in.Objectives
	plan.Notes = in.Notes

	ok, err := u.plans.UpdateDraft(ctx, plan)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.InvalidState("pre-call plan %d is no longer in DRAFT", plan.ID)
	}

	plan.SR = *actor
	plan.Customer = *customer
	plan.Contact = *contact
	return plan, nil
}

func (u *PreCallPlanUsecase) Delete(ctx context.Context, actorID, id uint) error {
	_, plan, err := u.loadOwnedDraft(ctx, actorID, id, "delete")
	if err != nil {
		return err
	}

	ok, err := u.plans.DeleteDraft(ctx, plan.ID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.InvalidState("pre-call plan %d is no longer in DRAFT", plan.ID)
	}
	return nil
}

func (u *PreCallPlanUsecase) Submit(ctx context.Context, actorID, id uint) (*model.PreCallPlan, error) {
	sr, plan, err := u.loadOwnedDraft(ctx, actorID, id, "submit")
	if err != nil {
		return nil, err
	}

	ok, err := u.plans.Transition(ctx, plan.ID, model.PlanDraft, map[string]any{
		"status": model.PlanPending,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.InvalidState("pre-call plan %d is no longer in DRAFT", plan.ID)
	}
	plan.Status = model.PlanPending

	// No manager assigned: nobody to notify, not an error
	if sr.ManagerID != nil {
		u.notifier.Notify(ctx, model.Notification{
			UserID:        *sr.ManagerID,
			Type:          model.NotifyPlanSubmitted,
			Title:         "Pre-Call Plan Submitted",
			Message:       fmt.Sprintf("%s submitted pre-call plan #%d for %s", sr.Name, plan.ID, plan.Customer.Name),
			ReferenceType: model.RefPreCallPlan,
			ReferenceID:   plan.ID,
		})
	}
	return plan, nil
}

func (u *PreCallPlanUsecase) ApproveOrReject(ctx context.Context, actorID, id uint, d PlanDecision) (*model.PreCallPlan, error) {
	approver, err := loadActor(ctx, u.users, actorID)
	if err != nil {
		return nil, err
	}
	if err := access.EnsureCallActivityAccess(approver.Role); err != nil {
		return nil, err
	}

	plan, err := u.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.Status != model.PlanPending {
		return nil, apperror.InvalidState("pre-call plan %d is %s; only PENDING plans can be approved or rejected", plan.ID, plan.Status)
	}
	if err := u.policy.EnsureCanApprove(ctx, approver, plan.SRID); err != nil {
		return nil, err
	}

	unlock, err := u.locker.Lock(ctx, lockKey("pre-call-plan", plan.ID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := u.clock()
	values := map[string]any{}
	if d.Approve {
		values["status"] = model.PlanApproved
		values["approved_by"] = approver.ID
		values["approved_at"] = now
	} else {
		values["status"] = model.PlanRejected
		if d.RejectionReason != "" {
			values["rejection_reason"] = d.RejectionReason
		}
	}

	ok, err := u.plans.Transition(ctx, plan.ID, model.PlanPending, values)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.InvalidState("pre-call plan %d was already decided", plan.ID)
	}

	n := model.Notification{
		UserID:        plan.SRID,
		ReferenceType: model.RefPreCallPlan,
		ReferenceID:   plan.ID,
	}
	if d.Approve {
		plan.Status = model.PlanApproved
		plan.ApprovedBy = &approver.ID
		plan.ApprovedAt = &now
		n.Type = model.NotifyPlanApproved
		n.Title = "Pre-Call Plan Approved"
		n.Message = fmt.Sprintf("Your pre-call plan #%d for %s was approved by %s", plan.ID, plan.Customer.Name, approver.Name)
	} else {
		plan.Status = model.PlanRejected
		n.Type = model.NotifyPlanRejected
		n.Title = "Pre-Call Plan Rejected"
		n.Message = fmt.Sprintf("Your pre-call plan #%d for %s was rejected by %s", plan.ID, plan.Customer.Name, approver.Name)
		if d.RejectionReason != "" {
			reason := d.RejectionReason
			plan.RejectionReason = &reason
			n.Message += ". Reason: " + reason
		}
	}
	u.notifier.Notify(ctx, n)
	return plan, nil
}

// loadOwnedDraft resolves the actor and plan and checks owner, then DRAFT.
func (u *PreCallPlanUsecase) loadOwnedDraft(ctx context.Context, actorID, id uint, action string) (*model.User, *model.PreCallPlan, error) {
	actor, err := loadActor(ctx, u.users, actorID)
	if err != nil {
		return nil, nil, err
	}
	if err := access.EnsureCallActivityAccess(actor.Role); err != nil {
		return nil, nil, err
	}

	plan, err := u.plans.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := requireOwner(actor, plan.SRID, "pre-call plan"); err != nil {
		return nil, nil, err
	}
	if plan.Status != model.PlanDraft {
		return nil, nil, apperror.InvalidState("cannot %s pre-call plan %d: status is %s, expected DRAFT", action, plan.ID, plan.Status)
	}
	return actor, plan, nil
}

func (u *PreCallPlanUsecase) customerAndContact(ctx context.Context, customerID, contactID uint) (*model.Customer, *model.Contact, error) {
	customer, err := u.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	contact, err := u.customers.FindContact(ctx, customer.ID, contactID)
	if err != nil {
		return nil, nil, err
	}
	return customer, contact, nil
}
