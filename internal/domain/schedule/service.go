package schedule

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("schedule slot not found")

// Service owns scheduling rules. Slot times are stored as opaque
// HH:MM strings; ordering is lexical which matches clock order.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, slot *Slot) error {
	if slot.DoctorID == 0 {
		return fmt.Errorf("doctor_id is required")
	}
	if slot.SlotTime == "" {
		return fmt.Errorf("slot_time is required")
	}
	if slot.DurationMins <= 0 {
		slot.DurationMins = 30
	}
	if slot.Status == "" {
		slot.Status = "booked"
	}
	return s.repo.Create(ctx, slot)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int) ([]*Detail, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

// NextForPatient returns the earliest slot booked for the patient,
// or nil when the patient has no upcoming appointment.
func (s *Service) NextForPatient(ctx context.Context, patientID string) (*Slot, error) {
	return s.repo.NextForPatient(ctx, patientID)
}
