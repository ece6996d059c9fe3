package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-activity-backend/internal/apperror"
	"sales-activity-backend/internal/model"
	"sales-activity-backend/internal/repository"
)

func TestSubmissionDeadline(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)

	tests := []struct {
		name     string
		callDate time.Time
		days     int
		want     time.Time
	}{
		{
			name:     "two days later at end of day",
			callDate: time.Date(2026, 3, 10, 0, 0, 0, 0, loc),
			days:     2,
			want:     time.Date(2026, 3, 12, 23, 59, 59, 999000000, loc),
		},
		{
			name:     "time of day on call date is ignored",
			callDate: time.Date(2026, 3, 10, 18, 45, 0, 0, loc),
			days:     2,
			want:     time.Date(2026, 3, 12, 23, 59, 59, 999000000, loc),
		},
		{
			name:     "rolls over month end",
			callDate: time.Date(2026, 1, 31, 0, 0, 0, 0, loc),
			days:     2,
			want:     time.Date(2026, 2, 2, 23, 59, 59, 999000000, loc),
		},
		{
			name:     "zero days means same day",
			callDate: time.Date(2026, 3, 10, 0, 0, 0, 0, loc),
			days:     0,
			want:     time.Date(2026, 3, 10, 23, 59, 59, 999000000, loc),
		},
		{
			name:     "call date loaded in another zone keeps its local calendar day",
			callDate: time.Date(2026, 10, 17, 17, 0, 0, 0, time.UTC),
			days:     2,
			want:     time.Date(2026, 10, 20, 23, 59, 59, 999000000, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubmissionDeadline(tt.callDate, tt.days, loc)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestCallReport_CheckInOutsideRadiusThenInside(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	_, err := w.reportUC.CheckIn(ctx, sr1ID, CheckInInput{
		CustomerID: customerID,
		ContactID:  contactID,
		Latitude:   fptr(north(customerLat, 12)),
		Longitude:  fptr(customerLng),
	})
	requireKind(t, err, apperror.KindDistanceExceeded)
	var distErr *apperror.DistanceError
	require.True(t, errors.As(err, &distErr))
	assert.InDelta(t, 12, distErr.Distance, 0.01)
	assert.Equal(t, maxRadiusMeters, distErr.MaxAllowed)
	assert.Empty(t, w.reports.byID)

	report, err := w.reportUC.CheckIn(ctx, sr1ID, CheckInInput{
		CustomerID: customerID,
		ContactID:  contactID,
		Latitude:   fptr(north(customerLat, 5)),
		Longitude:  fptr(customerLng),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReportDraft, report.Status)
	require.NotNil(t, report.CheckInTime)
	assert.True(t, report.CheckInTime.Equal(w.clock.now))
	assert.True(t, time.Date(2026, 3, 10, 0, 0, 0, 0, w.loc).Equal(report.CallDate))

	// 42 minutes on site, leaving from 3m away
	w.clock.now = w.clock.now.Add(42 * time.Minute)
	report, err = w.reportUC.CheckOut(ctx, sr1ID, report.ID, CheckOutInput{
		Latitude:  north(customerLat, 3),
		Longitude: customerLng,
	})
	require.NoError(t, err)
	require.NotNil(t, report.DurationMinutes)
	assert.Equal(t, 42, *report.DurationMinutes)
	assert.Equal(t, model.ReportDraft, w.reports.byID[report.ID].Status)
	require.NotNil(t, w.reports.byID[report.ID].DurationMinutes)
	assert.Equal(t, 42, *w.reports.byID[report.ID].DurationMinutes)
}

func TestCallReport_CheckInWithoutCoordinates(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	report, err := w.reportUC.CheckIn(ctx, sr1ID, CheckInInput{CustomerID: customerID, ContactID: contactID})
	require.NoError(t, err)
	assert.Nil(t, report.CheckInTime)
	assert.Nil(t, report.CheckInLat)

	w.clock.now = w.clock.now.Add(30 * time.Minute)
	report, err = w.reportUC.CheckOut(ctx, sr1ID, report.ID, CheckOutInput{Latitude: customerLat, Longitude: customerLng})
	require.NoError(t, err)
	require.NotNil(t, report.CheckOutTime)
	assert.Nil(t, report.DurationMinutes)
	assert.Nil(t, w.reports.byID[report.ID].DurationMinutes)
}

func TestCallReport_CheckInRejectsSingleCoordinate(t *testing.T) {
	far := north(customerLat, 5000)
	tests := []struct {
		name string
		in   CheckInInput
	}{
		{"latitude only", CheckInInput{CustomerID: customerID, ContactID: contactID, Latitude: &far}},
		{"longitude only", CheckInInput{CustomerID: customerID, ContactID: contactID, Longitude: fptr(customerLng)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld()

			report, err := w.reportUC.CheckIn(context.Background(), sr1ID, tt.in)

			requireKind(t, err, apperror.KindInvalidInput)
			assert.Nil(t, report)
			assert.Empty(t, w.reports.byID)
		})
	}
}

func TestCallReport_CustomerWithoutLocationSkipsGPS(t *testing.T) {
	w := newWorld()

	report, err := w.reportUC.CheckIn(context.Background(), sr1ID, CheckInInput{
		CustomerID: noLocCustomerID,
		ContactID:  noLocContactID,
		Latitude:   fptr(40.0),
		Longitude:  fptr(-74.0),
	})

	require.NoError(t, err)
	require.NotNil(t, report.CheckInTime)
}

func TestCallReport_CheckOutOutsideRadius(t *testing.T) {
	w := newWorld()
	report := w.checkedIn(t, sr1ID)

	_, err := w.reportUC.CheckOut(context.Background(), sr1ID, report.ID, CheckOutInput{
		Latitude:  north(customerLat, 15),
		Longitude: customerLng,
	})

	requireKind(t, err, apperror.KindDistanceExceeded)
	assert.Nil(t, w.reports.byID[report.ID].CheckOutTime)
}

func TestCallReport_CheckOutOnlyOnce(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	report := w.checkedIn(t, sr1ID)

	_, err := w.reportUC.CheckOut(ctx, sr1ID, report.ID, CheckOutInput{Latitude: customerLat, Longitude: customerLng})
	require.NoError(t, err)

	_, err = w.reportUC.CheckOut(ctx, sr1ID, report.ID, CheckOutInput{Latitude: customerLat, Longitude: customerLng})
	requireKind(t, err, apperror.KindInvalidState)
}

func TestCallReport_CheckInWithLinkedPlan(t *testing.T) {
	ctx := context.Background()

	t.Run("approved plan", func(t *testing.T) {
		w := newWorld()
		plan := w.approvedPlan(t, sr1ID, supID)

		report, err := w.reportUC.CheckIn(ctx, sr1ID, CheckInInput{
			PreCallPlanID: &plan.ID,
			CustomerID:    customerID,
			ContactID:     contactID,
		})
		require.NoError(t, err)
		require.NotNil(t, report.PreCallPlanID)
		assert.Equal(t, plan.ID, *report.PreCallPlanID)
	})

	t.Run("pending plan", func(t *testing.T) {
		w := newWorld()
		plan := w.pendingPlan(t, sr1ID)

		_, err := w.reportUC.CheckIn(ctx, sr1ID, CheckInInput{
			PreCallPlanID: &plan.ID,
			CustomerID:    customerID,
			ContactID:     contactID,
		})
		requireKind(t, err, apperror.KindInvalidState)
		assert.Contains(t, err.Error(), "Pre-Call Plan must be approved")
	})

	t.Run("plan of another representative", func(t *testing.T) {
		w := newWorld()
		plan := w.approvedPlan(t, sr2ID, supID)

		_, err := w.reportUC.CheckIn(ctx, sr1ID, CheckInInput{
			PreCallPlanID: &plan.ID,
			CustomerID:    customerID,
			ContactID:     contactID,
		})
		requireKind(t, err, apperror.KindForbidden)
	})

	t.Run("plan for a different customer", func(t *testing.T) {
		w := newWorld()
		plan := w.approvedPlan(t, sr1ID, supID)

		_, err := w.reportUC.CheckIn(ctx, sr1ID, CheckInInput{
			PreCallPlanID: &plan.ID,
			CustomerID:    noLocCustomerID,
			ContactID:     noLocContactID,
		})
		requireKind(t, err, apperror.KindInvalidInput)
	})
}

func TestCallReport_SubmitDeadlineBoundary(t *testing.T) {
	deadline := time.Date(2026, 3, 12, 23, 59, 59, 999000000, time.FixedZone("WIB", 7*60*60))

	t.Run("at the deadline", func(t *testing.T) {
		w := newWorld()
		report := w.checkedIn(t, sr1ID)
		w.clock.now = deadline

		report, err := w.reportUC.Submit(context.Background(), sr1ID, report.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ReportSubmitted, report.Status)
		require.NotNil(t, report.SubmittedAt)
		assert.True(t, report.SubmittedAt.Equal(deadline))
	})

	t.Run("one millisecond late", func(t *testing.T) {
		w := newWorld()
		report := w.checkedIn(t, sr1ID)
		w.clock.now = deadline.Add(time.Millisecond)

		_, err := w.reportUC.Submit(context.Background(), sr1ID, report.ID)
		requireKind(t, err, apperror.KindDeadlineExceeded)
		assert.Equal(t, model.ReportDraft, w.reports.byID[report.ID].Status)
	})
}

func TestCallReport_SubmitNotifiesManager(t *testing.T) {
	w := newWorld()

	report := w.submitted(t, sr1ID)

	n := w.notifier.last()
	assert.Equal(t, supID, n.UserID)
	assert.Equal(t, model.NotifyReportSubmitted, n.Type)
	assert.Equal(t, model.RefCallReport, n.ReferenceType)
	assert.Equal(t, report.ID, n.ReferenceID)
}

func TestCallReport_SubmitWithoutManagerSkipsNotification(t *testing.T) {
	w := newWorld()

	w.submitted(t, loneSRID)

	assert.Zero(t, w.notifier.count())
}

func TestCallReport_SubmittedIsImmutable(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	report := w.submitted(t, sr1ID)

	_, err := w.reportUC.Update(ctx, sr1ID, report.ID, ReportInput{NextAction: "follow up"})
	requireKind(t, err, apperror.KindInvalidState)

	_, err = w.reportUC.CheckOut(ctx, sr1ID, report.ID, CheckOutInput{Latitude: customerLat, Longitude: customerLng})
	requireKind(t, err, apperror.KindInvalidState)

	_, err = w.reportUC.Submit(ctx, sr1ID, report.ID)
	requireKind(t, err, apperror.KindInvalidState)

	err = w.reportUC.Delete(ctx, sr1ID, report.ID)
	requireKind(t, err, apperror.KindInvalidState)
}

func TestCallReport_UpdateFeedbackAndActivities(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	report := w.checkedIn(t, sr1ID)

	updated, err := w.reportUC.Update(ctx, sr1ID, report.ID, ReportInput{
		CustomerResponse: "Interested in bulk pricing",
		NextAction:       "Send quotation",
		ActivityIDs:      []uint{1, 2, 1},
	})
	require.NoError(t, err)
	assert.Len(t, updated.ActivitiesDone, 2)
	assert.Equal(t, "Send quotation", w.reports.byID[report.ID].NextAction)

	// nil activity ids keep the current set
	_, err = w.reportUC.Update(ctx, sr1ID, report.ID, ReportInput{NextAction: "Call back Friday"})
	require.NoError(t, err)
	assert.Len(t, w.reports.byID[report.ID].ActivitiesDone, 2)

	_, err = w.reportUC.Update(ctx, sr1ID, report.ID, ReportInput{ActivityIDs: []uint{1, 99}})
	requireKind(t, err, apperror.KindNotFound)
}

func TestCallReport_UpdateRejectsForeignContact(t *testing.T) {
	w := newWorld()
	report := w.checkedIn(t, sr1ID)
	other := noLocContactID

	_, err := w.reportUC.Update(context.Background(), sr1ID, report.ID, ReportInput{ContactID: &other})

	requireKind(t, err, apperror.KindNotFound)
}

func TestCallReport_OnlyOwnerMayModify(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	report := w.checkedIn(t, sr1ID)

	_, err := w.reportUC.Update(ctx, supID, report.ID, ReportInput{})
	requireKind(t, err, apperror.KindForbidden)

	_, err = w.reportUC.Submit(ctx, sr2ID, report.ID)
	requireKind(t, err, apperror.KindForbidden)

	_, err = w.reportUC.AddPhoto(ctx, sr2ID, report.ID, PhotoInput{Category: model.PhotoStore, URL: "https://cdn.example/p.jpg"})
	requireKind(t, err, apperror.KindForbidden)
}

func TestCallReport_Photos(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	report := w.checkedIn(t, sr1ID)

	photo, err := w.reportUC.AddPhoto(ctx, sr1ID, report.ID, PhotoInput{Category: model.PhotoDisplay, URL: "https://cdn.example/a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, sr1ID, photo.UploadedBy)

	require.NoError(t, w.reportUC.DeletePhoto(ctx, sr1ID, report.ID, photo.ID))
	assert.Empty(t, w.photos.byID)

	err = w.reportUC.DeletePhoto(ctx, sr1ID, report.ID, photo.ID)
	requireKind(t, err, apperror.KindNotFound)
}

func TestCallReport_PhotosAfterSubmit(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	report := w.submitted(t, sr1ID)

	photo, err := w.reportUC.AddPhoto(ctx, sr1ID, report.ID, PhotoInput{Category: model.PhotoSelfie, URL: "https://cdn.example/b.jpg"})
	require.NoError(t, err)

	err = w.reportUC.DeletePhoto(ctx, sr1ID, report.ID, photo.ID)
	requireKind(t, err, apperror.KindInvalidState)
	assert.Len(t, w.photos.byID, 1)
}

func TestCallReport_VisibilityFollowsHierarchy(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	own := w.checkedIn(t, sr1ID)
	grand := w.checkedIn(t, grandSRID)

	_, err := w.reportUC.Get(ctx, supID, own.ID)
	require.NoError(t, err)

	_, err = w.reportUC.Get(ctx, sr2ID, own.ID)
	requireKind(t, err, apperror.KindForbidden)

	_, err = w.reportUC.Get(ctx, supID, grand.ID)
	requireKind(t, err, apperror.KindForbidden)

	_, err = w.reportUC.Get(ctx, sdID, grand.ID)
	require.NoError(t, err)

	_, err = w.reportUC.Get(ctx, ceoID, own.ID)
	requireKind(t, err, apperror.KindForbidden)

	reports, err := w.reportUC.List(ctx, sup2ID, repository.RecordQuery{})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, grand.ID, reports[0].ID)
}

func TestCallReport_ManagerOfAnotherCompanyIsForbidden(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	report := w.checkedIn(t, sr1ID)
	plan := w.pendingPlan(t, sr1ID)

	w.users.byID[smID].CompanyID = 2

	_, err := w.reportUC.Get(ctx, smID, report.ID)
	requireKind(t, err, apperror.KindForbidden)
	_, err = w.planUC.Get(ctx, smID, plan.ID)
	requireKind(t, err, apperror.KindForbidden)
	_, err = w.planUC.ApproveOrReject(ctx, smID, plan.ID, PlanDecision{Approve: true})
	requireKind(t, err, apperror.KindForbidden)
	assert.Equal(t, model.PlanPending, w.plans.byID[plan.ID].Status)

	_, err = w.reportUC.Get(ctx, sdID, report.ID)
	assert.NoError(t, err)
}

func TestCallReport_CEOCannotCheckIn(t *testing.T) {
	w := newWorld()

	_, err := w.reportUC.CheckIn(context.Background(), ceoID, CheckInInput{CustomerID: customerID, ContactID: contactID})

	requireKind(t, err, apperror.KindForbidden)
}

func TestDurationMinutesRounds(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, durationMinutes(start, start.Add(29*time.Second)))
	assert.Equal(t, 1, durationMinutes(start, start.Add(30*time.Second)))
	assert.Equal(t, 35, durationMinutes(start, start.Add(35*time.Minute+29*time.Second)))
	assert.Equal(t, 36, durationMinutes(start, start.Add(35*time.Minute+30*time.Second)))
}
