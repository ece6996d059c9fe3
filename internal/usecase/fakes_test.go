package usecase

import (
	"context"
	"math"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sales-activity-backend/internal/access"
	"sales-activity-backend/internal/apperror"
	"sales-activity-backend/internal/geo"
	"sales-activity-backend/internal/model"
	"sales-activity-backend/internal/repository"
)

// In-memory stand-ins for the gorm repositories. Conditional writes follow the
// same "WHERE id = ? AND status = ?" semantics as the real ones.

type fakeUsers struct {
	byID map[uint]*model.User
}

func (f *fakeUsers) FindByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, apperror.NotFound("user %d not found", id)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindIDsByManager(_ context.Context, managerID uint) ([]uint, error) {
	var ids []uint
	for _, u := range f.byID {
		if u.ManagerID != nil && *u.ManagerID == managerID {
			ids = append(ids, u.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeUsers) CompanyIDOf(_ context.Context, id uint) (uint, error) {
	u, ok := f.byID[id]
	if !ok {
		return 0, apperror.NotFound("user %d not found", id)
	}
	return u.CompanyID, nil
}

func (f *fakeUsers) GetByManagerID(ctx context.Context, managerID uint) ([]model.User, error) {
	ids, _ := f.FindIDsByManager(ctx, managerID)
	out := make([]model.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, *f.byID[id])
	}
	return out, nil
}

func (f *fakeUsers) GetAll(_ context.Context, companyID uint, _ string) ([]model.User, error) {
	var out []model.User
	for _, u := range f.byID {
		if u.CompanyID == companyID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.byID[u.ID] = u
	return nil
}

type fakeCustomers struct {
	customers map[uint]*model.Customer
	contacts  map[uint]*model.Contact
}

func (f *fakeCustomers) FindByID(_ context.Context, id uint) (*model.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, apperror.NotFound("customer %d not found", id)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomers) FindContact(_ context.Context, customerID, contactID uint) (*model.Contact, error) {
	c, ok := f.contacts[contactID]
	if !ok || c.CustomerID != customerID {
		return nil, apperror.NotFound("contact %d not found", contactID)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomers) GetAll(context.Context, uint, string) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, nil
}

type fakeActivities struct {
	byID map[uint]model.Activity
}

func (f *fakeActivities) GetAll(context.Context) ([]model.Activity, error) {
	var out []model.Activity
	for _, a := range f.byID {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeActivities) FindByIDs(_ context.Context, ids []uint) ([]model.Activity, error) {
	var out []model.Activity
	for _, id := range ids {
		if a, ok := f.byID[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakePlans struct {
	mu        sync.Mutex
	nextID    uint
	byID      map[uint]*model.PreCallPlan
	customers *fakeCustomers
}

func (f *fakePlans) Create(_ context.Context, p *model.PreCallPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePlans) FindByID(_ context.Context, id uint) (*model.PreCallPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, apperror.NotFound("pre-call plan %d not found", id)
	}
	cp := *p
	if c, ok := f.customers.customers[cp.CustomerID]; ok {
		cp.Customer = *c
	}
	return &cp, nil
}

func (f *fakePlans) List(_ context.Context, filter access.ListFilter, q repository.RecordQuery) ([]model.PreCallPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.PreCallPlan
	for _, p := range f.byID {
		if !filter.Allows(p.SRID) {
			continue
		}
		if q.Status != "" && string(p.Status) != q.Status {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePlans) UpdateDraft(_ context.Context, p *model.PreCallPlan) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[p.ID]
	if !ok || cur.Status != model.PlanDraft {
		return false, nil
	}
	cur.CustomerID, cur.ContactID, cur.PlanDate = p.CustomerID, p.ContactID, p.PlanDate
	cur.Objectives, cur.Notes = p.Objectives, p.Notes
	return true, nil
}

func (f *fakePlans) DeleteDraft(_ context.Context, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[id]
	if !ok || cur.Status != model.PlanDraft {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func (f *fakePlans) Transition(_ context.Context, id uint, from model.PlanStatus, values map[string]any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[id]
	if !ok || cur.Status != from {
		return false, nil
	}
	for k, v := range values {
		switch k {
		case "status":
			cur.Status = v.(model.PlanStatus)
		case "approved_by":
			id := v.(uint)
			cur.ApprovedBy = &id
		case "approved_at":
			t := v.(time.Time)
			cur.ApprovedAt = &t
		case "rejection_reason":
			r := v.(string)
			cur.RejectionReason = &r
		}
	}
	return true, nil
}

type fakeReports struct {
	mu        sync.Mutex
	nextID    uint
	byID      map[uint]*model.CallReport
	customers *fakeCustomers
}

func (f *fakeReports) Create(_ context.Context, r *model.CallReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	r.ID = f.nextID
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeReports) FindByID(_ context.Context, id uint) (*model.CallReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, apperror.NotFound("call report %d not found", id)
	}
	cp := *r
	if c, ok := f.customers.customers[cp.CustomerID]; ok {
		cp.Customer = *c
	}
	return &cp, nil
}

func (f *fakeReports) List(_ context.Context, filter access.ListFilter, q repository.RecordQuery) ([]model.CallReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.CallReport
	for _, r := range f.byID {
		if filter.Allows(r.SRID) && (q.Status == "" || string(r.Status) == q.Status) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeReports) UpdateDraft(_ context.Context, r *model.CallReport, activities []model.Activity) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[r.ID]
	if !ok || cur.Status != model.ReportDraft {
		return false, nil
	}
	cur.ContactID = r.ContactID
	cur.CallObjective = r.CallObjective
	cur.CustomerResponse = r.CustomerResponse
	cur.CustomerRequest = r.CustomerRequest
	cur.CustomerObjections = r.CustomerObjections
	cur.CompetitorInfo = r.CompetitorInfo
	cur.NextAction = r.NextAction
	if activities != nil {
		cur.ActivitiesDone = activities
	}
	return true, nil
}

func (f *fakeReports) DeleteDraft(_ context.Context, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[id]
	if !ok || cur.Status != model.ReportDraft {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func (f *fakeReports) RecordCheckOut(_ context.Context, id uint, values map[string]any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[id]
	if !ok || cur.Status != model.ReportDraft || cur.CheckOutTime != nil {
		return false, nil
	}
	f.apply(cur, values)
	return true, nil
}

func (f *fakeReports) Transition(_ context.Context, id uint, from model.ReportStatus, values map[string]any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[id]
	if !ok || cur.Status != from {
		return false, nil
	}
	f.apply(cur, values)
	return true, nil
}

func (f *fakeReports) apply(cur *model.CallReport, values map[string]any) {
	for k, v := range values {
		switch k {
		case "status":
			cur.Status = v.(model.ReportStatus)
		case "submitted_at":
			t := v.(time.Time)
			cur.SubmittedAt = &t
		case "check_out_lat":
			x := v.(float64)
			cur.CheckOutLat = &x
		case "check_out_lng":
			x := v.(float64)
			cur.CheckOutLng = &x
		case "check_out_time":
			t := v.(time.Time)
			cur.CheckOutTime = &t
		case "duration_minutes":
			d := v.(int)
			cur.DurationMinutes = &d
		}
	}
}

type fakePhotos struct {
	nextID  uint
	byID    map[uint]*model.Photo
	reports *fakeReports
}

func (f *fakePhotos) Create(_ context.Context, p *model.Photo) error {
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePhotos) FindByID(_ context.Context, reportID, photoID uint) (*model.Photo, error) {
	p, ok := f.byID[photoID]
	if !ok || p.CallReportID != reportID {
		return nil, apperror.NotFound("photo %d not found", photoID)
	}
	cp := *p
	return &cp, nil
}

func (f *fakePhotos) DeleteFromDraft(_ context.Context, reportID, photoID uint) (bool, error) {
	p, ok := f.byID[photoID]
	if !ok || p.CallReportID != reportID {
		return false, nil
	}
	if r, ok := f.reports.byID[reportID]; !ok || r.Status != model.ReportDraft {
		return false, nil
	}
	delete(f.byID, photoID)
	return true, nil
}

type fakeCoaching struct {
	nextID  uint
	records []model.CoachingRecord
	reports *fakeReports
}

func (f *fakeCoaching) Create(_ context.Context, r *model.CoachingRecord) error {
	f.nextID++
	r.ID = f.nextID
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeCoaching) ListByReport(_ context.Context, reportID uint) ([]model.CoachingRecord, error) {
	var out []model.CoachingRecord
	for _, r := range f.records {
		if r.CallReportID == reportID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCoaching) RatingTotalsBySR(_ context.Context, filter access.ListFilter) ([]repository.RatingTotals, error) {
	bySR := map[uint]*repository.RatingTotals{}
	for _, c := range f.records {
		rep, ok := f.reports.byID[c.CallReportID]
		if !ok || rep.Status != model.ReportSubmitted || c.Rating == nil || !filter.Allows(rep.SRID) {
			continue
		}
		t, ok := bySR[rep.SRID]
		if !ok {
			t = &repository.RatingTotals{SRID: rep.SRID}
			bySR[rep.SRID] = t
		}
		t.Sum += int64(*c.Rating)
		t.Count++
	}
	out := make([]repository.RatingTotals, 0, len(bySR))
	for _, t := range bySR {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SRID < out[j].SRID })
	return out, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []model.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification model.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func (n *recordingNotifier) last() model.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent[len(n.sent)-1]
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// world wires every usecase over a fixed hierarchy:
//
//	CEO(1) -> SD(2) -> SM(3) -> SUP(10) -> SR(100), SR(101), SUP(11) -> SR(110)
//	SR(102) has no manager.
type world struct {
	users      *fakeUsers
	customers  *fakeCustomers
	activities *fakeActivities
	plans      *fakePlans
	reports    *fakeReports
	photos     *fakePhotos
	coaching   *fakeCoaching
	notifier   *recordingNotifier
	clock      *fakeClock
	loc        *time.Location

	planUC     *PreCallPlanUsecase
	reportUC   *CallReportUsecase
	coachingUC *CoachingUsecase
	userUC     *UserUsecase
}

const (
	ceoID     uint = 1
	sdID      uint = 2
	smID      uint = 3
	supID     uint = 10
	sr1ID     uint = 100
	sr2ID     uint = 101
	loneSRID  uint = 102
	sup2ID    uint = 11
	grandSRID uint = 110

	customerID       uint = 500
	contactID        uint = 600
	noLocCustomerID  uint = 501
	noLocContactID   uint = 601
	otherContactID   uint = 602
	customerLat           = -6.2000
	customerLng           = 106.8000
	maxRadiusMeters       = 10.0
	deadlineDaysTest      = 2
)

func uid(v uint) *uint { return &v }

func newWorld() *world {
	mk := func(id uint, role model.Role, name string, manager *uint) *model.User {
		u := &model.User{Role: role, Name: name, ManagerID: manager, CompanyID: 1}
		u.ID = id
		return u
	}
	users := &fakeUsers{byID: map[uint]*model.User{
		ceoID:     mk(ceoID, model.RoleCEO, "Chief", nil),
		sdID:      mk(sdID, model.RoleSD, "Director", uid(ceoID)),
		smID:      mk(smID, model.RoleSM, "Manager", uid(sdID)),
		supID:     mk(supID, model.RoleSUP, "Supervisor", uid(smID)),
		sr1ID:     mk(sr1ID, model.RoleSR, "Rep One", uid(supID)),
		sr2ID:     mk(sr2ID, model.RoleSR, "Rep Two", uid(supID)),
		loneSRID:  mk(loneSRID, model.RoleSR, "Lone Rep", nil),
		sup2ID:    mk(sup2ID, model.RoleSUP, "Junior Supervisor", uid(supID)),
		grandSRID: mk(grandSRID, model.RoleSR, "Grand Rep", uid(sup2ID)),
	}}

	lat, lng := customerLat, customerLng
	withLoc := &model.Customer{Name: "Toko Maju", Latitude: &lat, Longitude: &lng}
	withLoc.ID = customerID
	noLoc := &model.Customer{Name: "Warung Baru"}
	noLoc.ID = noLocCustomerID
	c1 := &model.Contact{CustomerID: customerID, Name: "Ibu Sari"}
	c1.ID = contactID
	c2 := &model.Contact{CustomerID: noLocCustomerID, Name: "Pak Budi"}
	c2.ID = noLocContactID
	c3 := &model.Contact{CustomerID: noLocCustomerID, Name: "Pak Andi"}
	c3.ID = otherContactID
	customers := &fakeCustomers{
		customers: map[uint]*model.Customer{customerID: withLoc, noLocCustomerID: noLoc},
		contacts:  map[uint]*model.Contact{contactID: c1, noLocContactID: c2, otherContactID: c3},
	}

	act := func(id uint, code string) model.Activity {
		a := model.Activity{Code: code, Name: code}
		a.ID = id
		return a
	}
	activities := &fakeActivities{byID: map[uint]model.Activity{
		1: act(1, "DETAILING"), 2: act(2, "SAMPLING"), 3: act(3, "ORDER_TAKING"),
	}}

	loc := time.FixedZone("WIB", 7*60*60)
	w := &world{
		users:      users,
		customers:  customers,
		activities: activities,
		plans:      &fakePlans{byID: map[uint]*model.PreCallPlan{}, customers: customers},
		reports:    &fakeReports{byID: map[uint]*model.CallReport{}, customers: customers},
		notifier:   &recordingNotifier{},
		clock:      &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, loc)},
		loc:        loc,
	}
	w.photos = &fakePhotos{byID: map[uint]*model.Photo{}, reports: w.reports}
	w.coaching = &fakeCoaching{reports: w.reports}

	policy := access.NewPolicy(users)
	w.planUC = NewPreCallPlanUsecase(w.plans, users, customers, policy, w.notifier, noopLocker{}, w.clock.Now)
	w.reportUC = NewCallReportUsecase(CallReportDeps{
		Reports:      w.reports,
		Plans:        w.plans,
		Users:        users,
		Customers:    customers,
		Activities:   activities,
		Photos:       w.photos,
		Policy:       policy,
		GPS:          geo.NewValidator(maxRadiusMeters),
		Notifier:     w.notifier,
		Locker:       noopLocker{},
		Clock:        w.clock.Now,
		DeadlineDays: deadlineDaysTest,
		Location:     loc,
	})
	w.coachingUC = NewCoachingUsecase(w.coaching, w.reports, users, policy, w.notifier, w.clock.Now)
	w.userUC = NewUserUsecase(users, policy)
	return w
}

func requireKind(t *testing.T, err error, want apperror.Kind) {
	t.Helper()
	require.Error(t, err)
	got, ok := apperror.KindOf(err)
	require.True(t, ok, "expected an apperror, got %v", err)
	require.Equal(t, want, got, "error: %v", err)
}

func fptr(v float64) *float64 { return &v }

// north moves lat by the given distance along a meridian.
func north(lat, meters float64) float64 {
	return lat + meters/geo.EarthRadiusMeters*180/math.Pi
}

func (w *world) pendingPlan(t *testing.T, srID uint) *model.PreCallPlan {
	t.Helper()
	plan, err := w.planUC.Create(context.Background(), srID, PlanInput{
		CustomerID: customerID,
		ContactID:  contactID,
		PlanDate:   w.clock.now,
		Objectives: "Introduce new product line",
	})
	require.NoError(t, err)
	plan, err = w.planUC.Submit(context.Background(), srID, plan.ID)
	require.NoError(t, err)
	return plan
}

func (w *world) approvedPlan(t *testing.T, srID, approverID uint) *model.PreCallPlan {
	t.Helper()
	plan := w.pendingPlan(t, srID)
	plan, err := w.planUC.ApproveOrReject(context.Background(), approverID, plan.ID, PlanDecision{Approve: true})
	require.NoError(t, err)
	return plan
}

// checkedIn starts a report 5m from the customer.
func (w *world) checkedIn(t *testing.T, srID uint) *model.CallReport {
	t.Helper()
	report, err := w.reportUC.CheckIn(context.Background(), srID, CheckInInput{
		CustomerID: customerID,
		ContactID:  contactID,
		Latitude:   fptr(north(customerLat, 5)),
		Longitude:  fptr(customerLng),
	})
	require.NoError(t, err)
	return report
}

func (w *world) submitted(t *testing.T, srID uint) *model.CallReport {
	t.Helper()
	report := w.checkedIn(t, srID)
	report, err := w.reportUC.Submit(context.Background(), srID, report.ID)
	require.NoError(t, err)
	return report
}
