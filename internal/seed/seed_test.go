package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mediflow/mediflow/internal/domain/doctor"
	"github.com/mediflow/mediflow/internal/domain/patient"
	"github.com/mediflow/mediflow/internal/domain/schedule"
	"github.com/mediflow/mediflow/internal/platform/password"
)

type mockDoctorRepo struct {
	byEmail map[string]*doctor.Doctor
	nextID  int
}

func (m *mockDoctorRepo) Create(ctx context.Context, d *doctor.Doctor) error {
	m.nextID++
	d.ID = m.nextID
	m.byEmail[d.Email] = d
	return nil
}

func (m *mockDoctorRepo) GetByID(ctx context.Context, id int) (*doctor.Doctor, error) {
	for _, d := range m.byEmail {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, doctor.ErrNotFound
}

func (m *mockDoctorRepo) GetByEmail(ctx context.Context, email string) (*doctor.Doctor, error) {
	if d, ok := m.byEmail[email]; ok {
		return d, nil
	}
	return nil, doctor.ErrNotFound
}

func (m *mockDoctorRepo) List(ctx context.Context, limit, offset int) ([]*doctor.Doctor, int, error) {
	return nil, 0, nil
}

func (m *mockDoctorRepo) ListByDept(ctx context.Context, dept string) ([]*doctor.Doctor, error) {
	return nil, nil
}

type mockPatientRepo struct {
	byID map[string]*patient.Patient
}

func (m *mockPatientRepo) Create(ctx context.Context, p *patient.Patient) error {
	m.byID[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id string) (*patient.Patient, error) {
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return nil, patient.ErrNotFound
}

func (m *mockPatientRepo) GetByEmailOrID(ctx context.Context, identifier string) (*patient.Patient, error) {
	return m.GetByID(ctx, identifier)
}

func (m *mockPatientRepo) GetWithDoctor(ctx context.Context, id string) (*patient.WithDoctor, error) {
	return nil, patient.ErrNotFound
}

func (m *mockPatientRepo) List(ctx context.Context, limit, offset int) ([]*patient.WithDoctor, int, error) {
	return nil, 0, nil
}

func (m *mockPatientRepo) ListByDoctor(ctx context.Context, doctorID int) ([]*patient.Patient, error) {
	return nil, nil
}

func (m *mockPatientRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := m.byID[id]
	return ok, nil
}

type mockScheduleRepo struct {
	slots []*schedule.Slot
}

func (m *mockScheduleRepo) Create(ctx context.Context, s *schedule.Slot) error {
	m.slots = append(m.slots, s)
	return nil
}

func (m *mockScheduleRepo) ExistsForDoctorAt(ctx context.Context, doctorID int, slotTime string) (bool, error) {
	for _, s := range m.slots {
		if s.DoctorID == doctorID && s.SlotTime == slotTime {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockScheduleRepo) ListByDoctor(ctx context.Context, doctorID int) ([]*schedule.Detail, error) {
	return nil, nil
}

func (m *mockScheduleRepo) NextForPatient(ctx context.Context, patientID string) (*schedule.Slot, error) {
	return nil, nil
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func seedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "doctors.csv",
		"name,dept,email,password,color\n"+
			"Dr. Test,Cardiology,test@mediflow.com,secret1,#FF0000\n")
	writeFile(t, dir, "patients.csv",
		"id,name,age,dept,priority,status,wait_mins,doctor_email,complaint,predicted_duration,ai_score,email,password\n"+
			"pat-900001,Test Patient,40,Cardiology,high,waiting,10,test@mediflow.com,chest pain,20,0.5,tp@example.com,patpass\n")
	writeFile(t, dir, "schedules.csv",
		"doctor_email,patient_id,patient_name,slot_time,duration_mins,status,notes\n"+
			"test@mediflow.com,PAT-900001,Test Patient,09:00,30,booked,review\n")
	return dir
}

func TestRunLoadsAllFiles(t *testing.T) {
	doctors := &mockDoctorRepo{byEmail: map[string]*doctor.Doctor{}}
	patients := &mockPatientRepo{byID: map[string]*patient.Patient{}}
	schedules := &mockScheduleRepo{}
	s := New(doctor.NewService(doctors), patients, schedules, zerolog.Nop())

	if err := s.Run(context.Background(), seedDir(t)); err != nil {
		t.Fatalf("run: %v", err)
	}

	d, err := doctors.GetByEmail(context.Background(), "test@mediflow.com")
	if err != nil {
		t.Fatalf("doctor not seeded: %v", err)
	}
	if ok, _ := password.Verify(d.PasswordHash, "secret1"); !ok {
		t.Error("doctor password not hashed from csv")
	}

	p, ok := patients.byID["PAT-900001"]
	if !ok {
		t.Fatal("patient id not upper-cased on load")
	}
	if p.DoctorID == nil || *p.DoctorID != d.ID {
		t.Errorf("patient doctor = %v, want %d", p.DoctorID, d.ID)
	}
	if p.PasswordHash == nil {
		t.Fatal("patient password not hashed")
	}
	if ok, _ := password.Verify(*p.PasswordHash, "patpass"); !ok {
		t.Error("patient password hash does not verify")
	}

	if len(schedules.slots) != 1 {
		t.Fatalf("slots = %d, want 1", len(schedules.slots))
	}
	if schedules.slots[0].DoctorID != d.ID {
		t.Errorf("slot doctor = %d, want %d", schedules.slots[0].DoctorID, d.ID)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	doctors := &mockDoctorRepo{byEmail: map[string]*doctor.Doctor{}}
	patients := &mockPatientRepo{byID: map[string]*patient.Patient{}}
	schedules := &mockScheduleRepo{}
	s := New(doctor.NewService(doctors), patients, schedules, zerolog.Nop())
	dir := seedDir(t)

	if err := s.Run(context.Background(), dir); err != nil {
		t.Fatalf("first run: %v", err)
	}
	firstHash := patients.byID["PAT-900001"].PasswordHash
	if err := s.Run(context.Background(), dir); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(doctors.byEmail) != 1 {
		t.Errorf("doctors duplicated: %d", len(doctors.byEmail))
	}
	if patients.byID["PAT-900001"].PasswordHash != firstHash {
		t.Error("existing patient rewritten on second run")
	}
	if len(schedules.slots) != 1 {
		t.Errorf("schedule slots after two runs = %d, want 1", len(schedules.slots))
	}
}
