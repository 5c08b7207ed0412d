package bedapp

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mediflow/mediflow/internal/domain/doctor"
	"github.com/mediflow/mediflow/internal/domain/patient"
	"github.com/mediflow/mediflow/internal/platform/password"
)

type mockRepo struct {
	apps      map[string]*Application
	failFirst int
}

func newMockRepo() *mockRepo {
	return &mockRepo{apps: make(map[string]*Application)}
}

func (m *mockRepo) Create(ctx context.Context, a *Application) error {
	if m.failFirst > 0 {
		m.failFirst--
		return ErrConflict
	}
	if _, ok := m.apps[a.ID]; ok {
		return ErrConflict
	}
	cp := *a
	m.apps[a.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) GetByUserID(ctx context.Context, userID string) (*Application, error) {
	for _, a := range m.apps {
		if a.UserID == userID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) List(ctx context.Context) ([]*Application, error) {
	var out []*Application
	for _, a := range m.apps {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockRepo) UpdateStatusIfPending(ctx context.Context, id, status string, decidedAt time.Time) (bool, error) {
	a, ok := m.apps[id]
	if !ok || a.Status != StatusPending {
		return false, nil
	}
	a.Status = status
	a.DecidedAt = &decidedAt
	return true, nil
}

type mockPatientRepo struct {
	patients map[string]*patient.Patient
	creates  int
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[string]*patient.Patient)}
}

func (m *mockPatientRepo) Create(ctx context.Context, p *patient.Patient) error {
	m.creates++
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id string) (*patient.Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, patient.ErrNotFound
	}
	return p, nil
}

func (m *mockPatientRepo) GetByEmailOrID(ctx context.Context, identifier string) (*patient.Patient, error) {
	return m.GetByID(ctx, identifier)
}

func (m *mockPatientRepo) GetWithDoctor(ctx context.Context, id string) (*patient.WithDoctor, error) {
	p, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &patient.WithDoctor{Patient: *p}, nil
}

func (m *mockPatientRepo) List(ctx context.Context, limit, offset int) ([]*patient.WithDoctor, int, error) {
	return nil, 0, nil
}

func (m *mockPatientRepo) ListByDoctor(ctx context.Context, doctorID int) ([]*patient.Patient, error) {
	return nil, nil
}

func (m *mockPatientRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := m.patients[id]
	return ok, nil
}

type mockDoctorRepo struct {
	doctors []*doctor.Doctor
}

func (m *mockDoctorRepo) Create(ctx context.Context, d *doctor.Doctor) error { return nil }

func (m *mockDoctorRepo) GetByID(ctx context.Context, id int) (*doctor.Doctor, error) {
	for _, d := range m.doctors {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, doctor.ErrNotFound
}

func (m *mockDoctorRepo) GetByEmail(ctx context.Context, email string) (*doctor.Doctor, error) {
	return nil, doctor.ErrNotFound
}

func (m *mockDoctorRepo) List(ctx context.Context, limit, offset int) ([]*doctor.Doctor, int, error) {
	return m.doctors, len(m.doctors), nil
}

func (m *mockDoctorRepo) ListByDept(ctx context.Context, dept string) ([]*doctor.Doctor, error) {
	var out []*doctor.Doctor
	for _, d := range m.doctors {
		if d.Dept == dept {
			out = append(out, d)
		}
	}
	return out, nil
}

type passthroughRunner struct{}

func (passthroughRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo *mockRepo, pr *mockPatientRepo, dr *mockDoctorRepo) *Service {
	svc := NewService(repo, pr, dr, passthroughRunner{})
	svc.randInt = func(n int) int { return 0 }
	return svc
}

func validSubmission() *Submission {
	return &Submission{
		ApplicantName: "Asha Rao",
		Age:           52,
		Gender:        "female",
		Contact:       "9876501234",
		Address:       "14 Lake Road",
		Department:    "Cardiology",
		BedType:       "icu",
		Reason:        "post-operative monitoring",
		Priority:      "high",
	}
}

func TestSubmitIssuesCredentials(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, newMockPatientRepo(), &mockDoctorRepo{})

	creds, err := svc.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.HasPrefix(creds.ApplicationID, "APP-") || len(creds.ApplicationID) != 10 {
		t.Errorf("application id = %q", creds.ApplicationID)
	}
	if !strings.HasPrefix(creds.UserID, "PAT-") || len(creds.UserID) != 10 {
		t.Errorf("user id = %q", creds.UserID)
	}
	if creds.PaymentAmount != 15000 {
		t.Errorf("icu payment = %d, want 15000", creds.PaymentAmount)
	}

	stored := repo.apps[creds.ApplicationID]
	if stored == nil {
		t.Fatal("application not persisted")
	}
	if stored.Status != StatusPending {
		t.Errorf("status = %q, want pending", stored.Status)
	}
	ok, err := password.Verify(stored.PasswordHash, creds.Password)
	if err != nil || !ok {
		t.Errorf("issued password does not verify against stored hash (ok=%v err=%v)", ok, err)
	}
}

func TestSubmitUnknownBedTypeFallsBackToGeneral(t *testing.T) {
	svc := newTestService(newMockRepo(), newMockPatientRepo(), &mockDoctorRepo{})
	sub := validSubmission()
	sub.BedType = "luxury-suite"
	creds, err := svc.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if creds.PaymentAmount != 1500 {
		t.Errorf("payment = %d, want general price 1500", creds.PaymentAmount)
	}
}

func TestSubmitDefaultsInvalidPriority(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, newMockPatientRepo(), &mockDoctorRepo{})
	sub := validSubmission()
	sub.Priority = "urgent-ish"
	creds, err := svc.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := repo.apps[creds.ApplicationID].Priority; got != patient.PriorityMedium {
		t.Errorf("priority = %q, want medium", got)
	}
}

func TestSubmitRetriesIDCollisions(t *testing.T) {
	repo := newMockRepo()
	repo.failFirst = 2
	svc := newTestService(repo, newMockPatientRepo(), &mockDoctorRepo{})
	if _, err := svc.Submit(context.Background(), validSubmission()); err != nil {
		t.Fatalf("submit after collisions: %v", err)
	}

	repo = newMockRepo()
	repo.failFirst = maxIDAttempts
	svc = newTestService(repo, newMockPatientRepo(), &mockDoctorRepo{})
	if _, err := svc.Submit(context.Background(), validSubmission()); err != ErrConflict {
		t.Fatalf("err = %v, want ErrConflict after exhausted retries", err)
	}
}

func submitOne(t *testing.T, svc *Service) *Credentials {
	t.Helper()
	creds, err := svc.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return creds
}

func TestDecideApprovePromotesApplicant(t *testing.T) {
	repo := newMockRepo()
	patients := newMockPatientRepo()
	doctors := &mockDoctorRepo{doctors: []*doctor.Doctor{
		{ID: 1, Name: "Dr. Iyer", Dept: "Cardiology"},
		{ID: 2, Name: "Dr. Bose", Dept: "Neurology"},
	}}
	svc := newTestService(repo, patients, doctors)
	creds := submitOne(t, svc)

	app, err := svc.Decide(context.Background(), creds.ApplicationID, StatusApproved)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if app.Status != StatusApproved {
		t.Errorf("status = %q, want approved", app.Status)
	}
	if app.DecidedAt == nil {
		t.Error("decided_at not set")
	}

	p, err := patients.GetByID(context.Background(), creds.UserID)
	if err != nil {
		t.Fatalf("promoted patient missing: %v", err)
	}
	if p.Name != "Asha Rao" || p.Age != 52 || p.Dept != "Cardiology" || p.Priority != "high" {
		t.Errorf("carried fields wrong: %+v", p)
	}
	if p.Complaint != "post-operative monitoring" {
		t.Errorf("complaint = %q, want the application reason", p.Complaint)
	}
	if p.Status != patient.StatusWaiting {
		t.Errorf("status = %q, want waiting", p.Status)
	}
	if p.DoctorID == nil || *p.DoctorID != 1 {
		t.Errorf("doctor id = %v, want 1 (cardiology)", p.DoctorID)
	}
	if p.PasswordHash == nil {
		t.Fatal("password hash not carried over")
	}
	ok, err := password.Verify(*p.PasswordHash, creds.Password)
	if err != nil || !ok {
		t.Errorf("applicant password does not verify against patient hash (ok=%v err=%v)", ok, err)
	}
}

func TestDecideApproveWithoutMatchingDoctor(t *testing.T) {
	patients := newMockPatientRepo()
	svc := newTestService(newMockRepo(), patients, &mockDoctorRepo{})
	creds := submitOne(t, svc)

	if _, err := svc.Decide(context.Background(), creds.ApplicationID, StatusApproved); err != nil {
		t.Fatalf("decide: %v", err)
	}
	p, err := patients.GetByID(context.Background(), creds.UserID)
	if err != nil {
		t.Fatalf("promoted patient missing: %v", err)
	}
	if p.DoctorID != nil {
		t.Errorf("doctor id = %v, want unassigned", p.DoctorID)
	}
}

func TestDecideRejectDoesNotPromote(t *testing.T) {
	patients := newMockPatientRepo()
	svc := newTestService(newMockRepo(), patients, &mockDoctorRepo{})
	creds := submitOne(t, svc)

	app, err := svc.Decide(context.Background(), creds.ApplicationID, StatusRejected)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if app.Status != StatusRejected {
		t.Errorf("status = %q, want rejected", app.Status)
	}
	if patients.creates != 0 {
		t.Errorf("patient created on rejection")
	}
}

func TestDecideSecondTimeInvalidState(t *testing.T) {
	patients := newMockPatientRepo()
	svc := newTestService(newMockRepo(), patients, &mockDoctorRepo{})
	creds := submitOne(t, svc)

	if _, err := svc.Decide(context.Background(), creds.ApplicationID, StatusApproved); err != nil {
		t.Fatalf("first decide: %v", err)
	}
	if _, err := svc.Decide(context.Background(), creds.ApplicationID, StatusApproved); err != ErrInvalidState {
		t.Fatalf("second approve err = %v, want ErrInvalidState", err)
	}
	if _, err := svc.Decide(context.Background(), creds.ApplicationID, StatusRejected); err != ErrInvalidState {
		t.Fatalf("reject after approve err = %v, want ErrInvalidState", err)
	}
	if patients.creates != 1 {
		t.Errorf("patient created %d times, want once", patients.creates)
	}
}

func TestDecideUnknownIDNotFound(t *testing.T) {
	svc := newTestService(newMockRepo(), newMockPatientRepo(), &mockDoctorRepo{})
	if _, err := svc.Decide(context.Background(), "APP-000000", StatusApproved); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDecideBadStatus(t *testing.T) {
	svc := newTestService(newMockRepo(), newMockPatientRepo(), &mockDoctorRepo{})
	creds := submitOne(t, svc)
	if _, err := svc.Decide(context.Background(), creds.ApplicationID, "maybe"); err != ErrInvalidStatus {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestDecideApproveSkipsExistingPatient(t *testing.T) {
	patients := newMockPatientRepo()
	svc := newTestService(newMockRepo(), patients, &mockDoctorRepo{})
	creds := submitOne(t, svc)

	patients.patients[creds.UserID] = &patient.Patient{ID: creds.UserID, Name: "Already Here"}
	if _, err := svc.Decide(context.Background(), creds.ApplicationID, StatusApproved); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if patients.creates != 0 {
		t.Errorf("existing patient overwritten")
	}
	if patients.patients[creds.UserID].Name != "Already Here" {
		t.Errorf("existing patient row changed")
	}
}

func TestLookupNormalizesID(t *testing.T) {
	svc := newTestService(newMockRepo(), newMockPatientRepo(), &mockDoctorRepo{})
	creds := submitOne(t, svc)

	app, err := svc.Lookup(context.Background(), "  "+strings.ToLower(creds.ApplicationID)+" ")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if app.ID != creds.ApplicationID {
		t.Errorf("lookup returned %q, want %q", app.ID, creds.ApplicationID)
	}
	if _, err := svc.Lookup(context.Background(), "APP-999999"); err != ErrNotFound {
		t.Fatalf("miss err = %v, want ErrNotFound", err)
	}
}

func TestPriceTable(t *testing.T) {
	cases := map[string]int{
		"general":      1500,
		"semi-private": 3500,
		"private":      7000,
		"icu":          15000,
		"ICU":          15000,
		"":             1500,
		"penthouse":    1500,
	}
	for bedType, want := range cases {
		if got := PriceFor(bedType); got != want {
			t.Errorf("PriceFor(%q) = %d, want %d", bedType, got, want)
		}
	}
}
