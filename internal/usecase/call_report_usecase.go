package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"sales-activity-backend/internal/access"
	"sales-activity-backend/internal/apperror"
	"sales-activity-backend/internal/geo"
	"sales-activity-backend/internal/model"
	"sales-activity-backend/internal/repository"
)

type CheckInInput struct {
	PreCallPlanID *uint
	CustomerID    uint
	ContactID     uint
	CallDate      *time.Time // defaults to today
	Latitude      *float64
	Longitude     *float64
	CallObjective string
}

type ReportInput struct {
	ContactID          *uint
	CallObjective      string
	CustomerResponse   string
	CustomerRequest    string
	CustomerObjections string
	CompetitorInfo     string
	NextAction         string
	ActivityIDs        []uint // nil keeps the current set
}

type CheckOutInput struct {
	Latitude  float64
	Longitude float64
}

type PhotoInput struct {
	Category model.PhotoCategory
	URL      string
	Caption  string
}

type CallReportDeps struct {
	Reports    repository.CallReportRepository
	Plans      repository.PreCallPlanRepository
	Users      repository.UserRepository
	Customers  repository.CustomerRepository
	Activities repository.ActivityRepository
	Photos     repository.PhotoRepository
	Policy     *access.Policy
	GPS        *geo.Validator
	Notifier   Notifier
	Locker     Locker
	Clock      Clock

	DeadlineDays int
	Location     *time.Location
}

// CallReportUsecase drives DRAFT -> SUBMITTED with GPS check-in/out.
type CallReportUsecase struct {
	CallReportDeps
}

func NewCallReportUsecase(deps CallReportDeps) *CallReportUsecase {
	if deps.Location == nil {
		deps.Location = time.Local
	}
	return &CallReportUsecase{CallReportDeps: deps}
}

func (u *CallReportUsecase) CheckIn(ctx context.Context, srID uint, in CheckInInput) (*model.CallReport, error) {
	// A lone coordinate would skip the radius check.
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return nil, apperror.InvalidInput("latitude and longitude must be sent together")
	}

	// 1. Resolve SR, customer and contact
	sr, err := loadActor(ctx, u.Users, srID)
	if err != nil {
		return nil, err
	}
	if err := access.EnsureCallActivityAccess(sr.Role); err != nil {
		return nil, err
	}
	customer, err := u.Customers.FindByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	contact, err := u.Customers.FindContact(ctx, customer.ID, in.ContactID)
	if err != nil {
		return nil, err
	}

	// 2. Linked plan must be APPROVED and belong to this SR
	if in.PreCallPlanID != nil {
		plan, err := u.Plans.FindByID(ctx, *in.PreCallPlanID)
		if err != nil {
			return nil, err
		}
		if plan.Status != model.PlanApproved {
			return nil, apperror.InvalidState("Pre-Call Plan must be approved")
		}
		if plan.SRID != sr.ID {
			return nil, apperror.Forbidden("pre-call plan %d belongs to another representative", plan.ID)
		}
		if plan.CustomerID != customer.ID {
			return nil, apperror.InvalidInput("pre-call plan %d is for a different customer", plan.ID)
		}
	}

	// 3. GPS radius against the registered customer location
	now := u.Clock()
	hasPosition := in.Latitude != nil && in.Longitude != nil
	if hasPosition && customer.HasLocation() {
		if _, err := u.GPS.Check(*in.Latitude, *in.Longitude, *customer.Latitude, *customer.Longitude); err != nil {
			return nil, err
		}
	}

	callDate := startOfDay(now, u.Location)
	if in.CallDate != nil {
		callDate = startOfDay(*in.CallDate, u.Location)
	}

	report := &model.CallReport{
		SRID:          sr.ID,
		PreCallPlanID: in.PreCallPlanID,
		CustomerID:    customer.ID,
		ContactID:     contact.ID,
		CallDate:      callDate,
		Status:        model.ReportDraft,
		CallObjective: in.CallObjective,
	}
	if hasPosition {
		report.CheckInLat = in.Latitude
		report.CheckInLng = in.Longitude
		report.CheckInTime = &now
	}

	if err := u.Reports.Create(ctx, report); err != nil {
		return nil, err
	}

	report.SR = *sr
	report.Customer = *customer
	report.Contact = *contact
	return report, nil
}

func (u *CallReportUsecase) Get(ctx context.Context, actorID, id uint) (*model.CallReport, error) {
	actor, err := loadActor(ctx, u.Users, actorID)
	if err != nil {
		return nil, err
	}
	if err := access.EnsureCallActivityAccess(actor.Role); err != nil {
		return nil, err
	}

	report, err := u.Reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.Policy.EnsureCanView(ctx, actor, report.SRID); err != nil {
		return nil, err
	}
	return report, nil
}

func (u *CallReportUsecase) List(ctx context.Context, actorID uint, q repository.RecordQuery) ([]model.CallReport, error) {
	actor, err := loadActor(ctx, u.Users, actorID)
	if err != nil {
		return nil, err
	}
	filter, err := u.Policy.ListFilterFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	return u.Reports.List(ctx, filter, q)
}

func (u *CallReportUsecase) Update(ctx context.Context, actorID, id uint, in ReportInput) (*model.CallReport, error) {
	_, report, err := u.loadOwnedDraft(ctx, actorID, id, "update")
	if err != nil {
		return nil, err
	}

	if in.ContactID != nil {
		contact, err := u.Customers.FindContact(ctx, report.CustomerID, *in.ContactID)
		if err != nil {
			return nil, err
		}
		report.ContactID = contact.ID
		report.Contact = *contact
	}

	var activities []model.Activity
	if in.ActivityIDs != nil {
		activities, err = u.activitiesByID(ctx, in.ActivityIDs)
		if err != nil {
			return nil, err
		}
	}

	report.CallObjective = in.CallObjective
	report.CustomerResponse = in.CustomerResponse
	report.CustomerRequest = in.CustomerRequest
	report.CustomerObjections = in.CustomerObjections
	report.CompetitorInfo = in.CompetitorInfo
	report.NextAction = in.NextAction

	unlock, err := u.Locker.Lock(ctx, lockKey("call-report", report.ID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	ok, err := u.Reports.UpdateDraft(ctx, report, activities)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.InvalidState("call report %d is no longer in DRAFT", report.ID)
	}
	if activities != nil {
		report.ActivitiesDone = activities
	}
	return report, nil
}

func (u *CallReportUsecase) Delete(ctx context.Context, actorID, id uint) error {
	_, report, err := u.loadOwnedDraft(ctx, actorID, id, "delete")
	if err != nil {
		return err
	}

	unlock, err := u.Locker.Lock(ctx, lockKey("call-report", report.ID))
	if err != nil {
		return err
	}
	defer unlock()

	ok, err := u.Reports.DeleteDraft(ctx, report.ID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.InvalidState("call report %d is no longer in DRAFT", report.ID)
	}
	return nil
}

// CheckOut records the leaving position once. It does not change status.
func (u *CallReportUsecase) CheckOut(ctx context.Context, actorID, id uint, in CheckOutInput) (*model.CallReport, error) {
	_, report, err := u.loadOwnedDraft(ctx, actorID, id, "check out of")
	if err != nil {
		return nil, err
	}
	if report.CheckOutTime != nil {
		return nil, apperror.InvalidState("check-out for call report %d was already recorded", report.ID)
	}

	if report.Customer.HasLocation() {
		if _, err := u.GPS.Check(in.Latitude, in.Longitude, *report.Customer.Latitude, *report.Customer.Longitude); err != nil {
			return nil, err
		}
	}

	now := u.Clock()
	values := map[string]any{
		"check_out_lat":  in.Latitude,
		"check_out_lng":  in.Longitude,
		"check_out_time": now,
	}
	var duration *int
	if report.CheckInTime != nil {
		d := durationMinutes(*report.CheckInTime, now)
		duration = &d
		values["duration_minutes"] = d
	}

	unlock, err := u.Locker.Lock(ctx, lockKey("call-report", report.ID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	ok, err := u.Reports.RecordCheckOut(ctx, report.ID, values)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.InvalidState("check-out for call report %d was already recorded", report.ID)
	}

	lat, lng := in.Latitude, in.Longitude
	report.CheckOutLat = &lat
	report.CheckOutLng = &lng
	report.CheckOutTime = &now
	report.DurationMinutes = duration
	return report, nil
}

func (u *CallReportUsecase) Submit(ctx context.Context, actorID, id uint) (*model.CallReport, error) {
	sr, report, err := u.loadOwnedDraft(ctx, actorID, id, "submit")
	if err != nil {
		return nil, err
	}

	now := u.Clock()
	deadline := SubmissionDeadline(report.CallDate, u.DeadlineDays, u.Location)
	if now.After(deadline) {
		return nil, apperror.DeadlineExceeded("submission deadline for call report %d passed at %s",
			report.ID, deadline.Format("2006-01-02 15:04:05"))
	}

	unlock, err := u.Locker.Lock(ctx, lockKey("call-report", report.ID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	ok, err := u.Reports.Transition(ctx, report.ID, model.ReportDraft, map[string]any{
		"status":       model.ReportSubmitted,
		"submitted_at": now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.InvalidState("call report %d is no longer in DRAFT", report.ID)
	}
	report.Status = model.ReportSubmitted
	report.SubmittedAt = &now

	if sr.ManagerID != nil {
		u.Notifier.Notify(ctx, model.Notification{
			UserID:        *sr.ManagerID,
			Type:          model.NotifyReportSubmitted,
			Title:         "Call Report Submitted",
			Message:       fmt.Sprintf("%s submitted call report #%d for %s", sr.Name, report.ID, report.Customer.Name),
			ReferenceType: model.RefCallReport,
			ReferenceID:   report.ID,
		})
	}
	return report, nil
}

// AddPhoto has no status restriction; the report only has to exist and be owned.
func (u *CallReportUsecase) AddPhoto(ctx context.Context, actorID, reportID uint, in PhotoInput) (*model.Photo, error) {
	actor, err := loadActor(ctx, u.Users, actorID)
	if err != nil {
		return nil, err
	}
	if err := access.EnsureCallActivityAccess(actor.Role); err != nil {
		return nil, err
	}
	report, err := u.Reports.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actor, report.SRID, "call report"); err != nil {
		return nil, err
	}

	photo := &model.Photo{
		CallReportID: report.ID,
		Category:     in.Category,
		URL:          in.URL,
		Caption:      in.Caption,
		UploadedBy:   actor.ID,
	}
	if err := u.Photos.Create(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (u *CallReportUsecase) DeletePhoto(ctx context.Context, actorID, reportID, photoID uint) error {
	_, report, err := u.loadOwnedDraft(ctx, actorID, reportID, "delete photos of")
	if err != nil {
		return err
	}
	if _, err := u.Photos.FindByID(ctx, report.ID, photoID); err != nil {
		return err
	}

	ok, err := u.Photos.DeleteFromDraft(ctx, report.ID, photoID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.InvalidState("photos can only be deleted while call report %d is DRAFT", report.ID)
	}
	return nil
}

func (u *CallReportUsecase) loadOwnedDraft(ctx context.Context, actorID, id uint, action string) (*model.User, *model.CallReport, error) {
	actor, err := loadActor(ctx, u.Users, actorID)
	if err != nil {
		return nil, nil, err
	}
	if err := access.EnsureCallActivityAccess(actor.Role); err != nil {
		return nil, nil, err
	}

	report, err := u.Reports.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := requireOwner(actor, report.SRID, "call report"); err != nil {
		return nil, nil, err
	}
	if report.Status != model.ReportDraft {
		return nil, nil, apperror.InvalidState("cannot %s call report %d: status is %s, expected DRAFT", action, report.ID, report.Status)
	}
	return actor, report, nil
}

func (u *CallReportUsecase) activitiesByID(ctx context.Context, ids []uint) ([]model.Activity, error) {
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	activities, err := u.Activities.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(activities) != len(unique) {
		found := make(map[uint]bool, len(activities))
		for _, a := range activities {
			found[a.ID] = true
		}
		for _, id := range unique {
			if !found[id] {
				return nil, apperror.NotFound("activity %d not found", id)
			}
		}
	}
	return activities, nil
}

// durationMinutes rounds the elapsed milliseconds to whole minutes.
func durationMinutes(checkIn, checkOut time.Time) int {
	return int(math.Round(float64(checkOut.Sub(checkIn).Milliseconds()) / 60000))
}
