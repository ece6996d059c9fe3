package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"sales-activity-backend/internal/access"
	"sales-activity-backend/internal/apperror"
	"sales-activity-backend/internal/model"
	"sales-activity-backend/internal/repository"
)

const (
	MinRating = 1
	MaxRating = 5
)

type CoachingInput struct {
	Rating   *int
	Comments string
}

type RatingSummary struct {
	SRID          uint            `json:"sr_id"`
	Reviews       int64           `json:"reviews"`
	AverageRating decimal.Decimal `json:"average_rating"`
}

// CoachingUsecase appends manager feedback to submitted call reports. Records
// are never updated or deleted; a correction is a new record.
type CoachingUsecase struct {
	coaching repository.CoachingRepository
	reports  repository.CallReportRepository
	users    repository.UserRepository
	policy   *access.Policy
	notifier Notifier
	clock    Clock
}

func NewCoachingUsecase(
	coaching repository.CoachingRepository,
	reports repository.CallReportRepository,
	users repository.UserRepository,
	policy *access.Policy,
	notifier Notifier,
	clock Clock,
) *CoachingUsecase {
	return &CoachingUsecase{
		coaching: coaching,
		reports:  reports,
		users:    users,
		policy:   policy,
		notifier: notifier,
		clock:    clock,
	}
}

func (u *CoachingUsecase) AddCoaching(ctx context.Context, managerID, reportID uint, in CoachingInput) (*model.CoachingRecord, error) {
	if in.Rating != nil && (*in.Rating < MinRating || *in.Rating > MaxRating) {
		return nil, apperror.InvalidInput("rating must be between %d and %d", MinRating, MaxRating)
	}

	manager, err := loadActor(ctx, u.users, managerID)
	if err != nil {
		return nil, err
	}
	if err := access.EnsureCallActivityAccess(manager.Role); err != nil {
		return nil, err
	}

	report, err := u.reports.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != model.ReportSubmitted {
		return nil, apperror.InvalidState("coaching can only be added to a SUBMITTED call report, report %d is %s", report.ID, report.Status)
	}
	if err := u.policy.EnsureCanApprove(ctx, manager, report.SRID); err != nil {
		return nil, err
	}

	record := &model.CoachingRecord{
		CallReportID: report.ID,
		ManagerID:    manager.ID,
		Rating:       in.Rating,
		Comments:     in.Comments,
		CreatedAt:    u.clock(),
	}
	if err := u.coaching.Create(ctx, record); err != nil {
		return nil, err
	}
	record.Manager = *manager

	u.notifier.Notify(ctx, model.Notification{
		UserID:        report.SRID,
		Type:          model.NotifyCoachingAdded,
		Title:         "New Coaching Feedback",
		Message:       fmt.Sprintf("%s left coaching feedback on your call report #%d for %s", manager.Name, report.ID, report.Customer.Name),
		ReferenceType: model.RefCallReport,
		ReferenceID:   report.ID,
	})
	return record, nil
}

func (u *CoachingUsecase) ListForReport(ctx context.Context, actorID, reportID uint) ([]model.CoachingRecord, error) {
	actor, err := loadActor(ctx, u.users, actorID)
	if err != nil {
		return nil, err
	}
	if err := access.EnsureCallActivityAccess(actor.Role); err != nil {
		return nil, err
	}
	report, err := u.reports.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := u.policy.EnsureCanView(ctx, actor, report.SRID); err != nil {
		return nil, err
	}
	return u.coaching.ListByReport(ctx, report.ID)
}

// Summary is the mean rating per SR over submitted reports with a rating,
// limited to the actor's listing scope.
func (u *CoachingUsecase) Summary(ctx context.Context, actorID uint) ([]RatingSummary, error) {
	actor, err := loadActor(ctx, u.users, actorID)
	if err != nil {
		return nil, err
	}
	filter, err := u.policy.ListFilterFor(ctx, actor)
	if err != nil {
		return nil, err
	}

	totals, err := u.coaching.RatingTotalsBySR(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]RatingSummary, 0, len(totals))
	for _, t := range totals {
		if t.Count == 0 {
			continue
		}
		out = append(out, RatingSummary{
			SRID:          t.SRID,
			Reviews:       t.Count,
			AverageRating: averageRating(t.Sum, t.Count),
		})
	}
	return out, nil
}

func averageRating(sum, count int64) decimal.Decimal {
	return decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(count), 2)
}
