package schedule

import "context"

// Repository defines the persistence interface for appointment slots.
type Repository interface {
	Create(ctx context.Context, s *Slot) error
	// ExistsForDoctorAt reports whether the doctor already has a slot at
	// the given time.
	ExistsForDoctorAt(ctx context.Context, doctorID int, slotTime string) (bool, error)
	ListByDoctor(ctx context.Context, doctorID int) ([]*Detail, error)
	// NextForPatient returns the patient's earliest slot, or nil when none
	// is booked.
	NextForPatient(ctx context.Context, patientID string) (*Slot, error)
}
