package schedule

import (
	"context"
	"sort"
	"testing"
)

type mockRepo struct {
	slots  map[int]*Slot
	nextID int
}

func newMockRepo() *mockRepo {
	return &mockRepo{slots: make(map[int]*Slot)}
}

func (m *mockRepo) Create(ctx context.Context, s *Slot) error {
	m.nextID++
	s.ID = m.nextID
	cp := *s
	m.slots[s.ID] = &cp
	return nil
}

func (m *mockRepo) ExistsForDoctorAt(ctx context.Context, doctorID int, slotTime string) (bool, error) {
	for _, s := range m.slots {
		if s.DoctorID == doctorID && s.SlotTime == slotTime {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) ListByDoctor(ctx context.Context, doctorID int) ([]*Detail, error) {
	var out []*Detail
	for _, s := range m.slots {
		if s.DoctorID == doctorID {
			out = append(out, &Detail{Slot: *s})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlotTime < out[j].SlotTime })
	return out, nil
}

func (m *mockRepo) NextForPatient(ctx context.Context, patientID string) (*Slot, error) {
	var best *Slot
	for _, s := range m.slots {
		if s.PatientID == nil || *s.PatientID != patientID {
			continue
		}
		if best == nil || s.SlotTime < best.SlotTime {
			best = s
		}
	}
	return best, nil
}

func TestCreateDefaults(t *testing.T) {
	svc := NewService(newMockRepo())
	slot := &Slot{DoctorID: 3, SlotTime: "09:30"}
	if err := svc.Create(context.Background(), slot); err != nil {
		t.Fatalf("create: %v", err)
	}
	if slot.DurationMins != 30 {
		t.Errorf("duration = %d, want 30", slot.DurationMins)
	}
	if slot.Status != "booked" {
		t.Errorf("status = %q, want booked", slot.Status)
	}
	if slot.ID == 0 {
		t.Error("expected id to be assigned")
	}
}

func TestCreateRequiresDoctorAndTime(t *testing.T) {
	svc := NewService(newMockRepo())
	if err := svc.Create(context.Background(), &Slot{SlotTime: "10:00"}); err == nil {
		t.Error("expected error for missing doctor_id")
	}
	if err := svc.Create(context.Background(), &Slot{DoctorID: 1}); err == nil {
		t.Error("expected error for missing slot_time")
	}
}

func TestListByDoctorOrdersBySlotTime(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	for _, tm := range []string{"14:00", "09:00", "11:30"} {
		if err := svc.Create(context.Background(), &Slot{DoctorID: 7, SlotTime: tm}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	items, err := svc.ListByDoctor(context.Background(), 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d slots, want 3", len(items))
	}
	want := []string{"09:00", "11:30", "14:00"}
	for i, d := range items {
		if d.SlotTime != want[i] {
			t.Errorf("slot %d time = %q, want %q", i, d.SlotTime, want[i])
		}
	}
}

func TestNextForPatient(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	pid := "PAT-ABC123"
	other := "PAT-ZZZ999"
	for _, c := range []struct {
		pid  string
		time string
	}{
		{pid, "15:00"},
		{pid, "10:00"},
		{other, "08:00"},
	} {
		p := c.pid
		if err := svc.Create(context.Background(), &Slot{DoctorID: 1, SlotTime: c.time, PatientID: &p}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	next, err := svc.NextForPatient(context.Background(), pid)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if next == nil || next.SlotTime != "10:00" {
		t.Fatalf("next = %+v, want slot at 10:00", next)
	}

	none, err := svc.NextForPatient(context.Background(), "PAT-NONE00")
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if none != nil {
		t.Errorf("expected nil for patient with no slots, got %+v", none)
	}
}
