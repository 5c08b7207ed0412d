package bedapp

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/mediflow/mediflow/internal/domain/doctor"
	"github.com/mediflow/mediflow/internal/domain/patient"
	"github.com/mediflow/mediflow/internal/platform/password"
)

var (
	ErrNotFound      = errors.New("bed application not found")
	ErrInvalidState  = errors.New("bed application already decided")
	ErrInvalidStatus = errors.New("status must be approved or rejected")
	ErrConflict      = errors.New("bed application identifier conflict")
)

// Identifier generation retries against unique collisions before giving up.
const maxIDAttempts = 5

// TxRunner scopes a function to a single database transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service owns the bed application workflow: intake with credential
// issuance, admin decisions, and the approval-time promotion of an
// applicant into a patient.
type Service struct {
	repo     Repository
	patients patient.Repository
	doctors  doctor.Repository
	tx       TxRunner
	now      func() time.Time
	randInt  func(n int) int
}

func NewService(repo Repository, patients patient.Repository, doctors doctor.Repository, tx TxRunner) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		doctors:  doctors,
		tx:       tx,
		now:      time.Now,
		randInt:  rand.IntN,
	}
}

// Submit registers a new application and returns the credential bundle.
// The plaintext password exists only in the returned bundle; the stored
// record carries the bcrypt hash.
func (s *Service) Submit(ctx context.Context, sub *Submission) (*Credentials, error) {
	if !patient.ValidPriority(sub.Priority) {
		sub.Priority = patient.PriorityMedium
	}

	plain, err := password.Generate(10)
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		digits, err := password.GenerateDigits(6)
		if err != nil {
			return nil, fmt.Errorf("generate application id: %w", err)
		}
		alnum, err := password.GenerateUpperAlnum(6)
		if err != nil {
			return nil, fmt.Errorf("generate user id: %w", err)
		}
		app := &Application{
			ID:            "APP-" + digits,
			ApplicantName: sub.ApplicantName,
			Age:           sub.Age,
			Gender:        sub.Gender,
			Contact:       sub.Contact,
			Address:       sub.Address,
			Department:    sub.Department,
			BedType:       sub.BedType,
			Reason:        sub.Reason,
			Priority:      sub.Priority,
			Status:        StatusPending,
			PaymentStatus: "unpaid",
			PaymentAmount: PriceFor(sub.BedType),
			UserID:        "PAT-" + alnum,
			PasswordHash:  hash,
			AppliedAt:     s.now(),
		}
		err = s.repo.Create(ctx, app)
		if errors.Is(err, ErrConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create application: %w", err)
		}
		return &Credentials{
			ApplicationID: app.ID,
			UserID:        app.UserID,
			Password:      plain,
			PaymentAmount: app.PaymentAmount,
		}, nil
	}
	return nil, ErrConflict
}

// Decide moves a pending application to approved or rejected. Approval
// promotes the applicant to a patient in the same transaction, so a crash
// between the two writes never leaves an approved application without its
// patient row. A second decision on the same application fails with
// ErrInvalidState regardless of outcome.
func (s *Service) Decide(ctx context.Context, id, status string) (*Application, error) {
	if status != StatusApproved && status != StatusRejected {
		return nil, ErrInvalidStatus
	}
	id = NormalizeID(id)

	var decided *Application
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ok, err := s.repo.UpdateStatusIfPending(txCtx, id, status, s.now())
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		app, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidState
		}
		if status == StatusApproved {
			if err := s.promote(txCtx, app); err != nil {
				return fmt.Errorf("promote applicant: %w", err)
			}
		}
		decided = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}

// promote inserts the approved applicant as a patient, unless a patient
// with the application's user id already exists.
func (s *Service) promote(ctx context.Context, app *Application) error {
	exists, err := s.patients.Exists(ctx, app.UserID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	var doctorID *int
	candidates, err := s.doctors.ListByDept(ctx, app.Department)
	if err != nil {
		return err
	}
	if len(candidates) > 0 {
		id := candidates[s.randInt(len(candidates))].ID
		doctorID = &id
	}

	hash := app.PasswordHash
	p := &patient.Patient{
		ID:           app.UserID,
		Name:         app.ApplicantName,
		Age:          app.Age,
		Dept:         app.Department,
		Priority:     app.Priority,
		Status:       patient.StatusWaiting,
		DoctorID:     doctorID,
		Complaint:    app.Reason,
		PasswordHash: &hash,
	}
	return s.patients.Create(ctx, p)
}

// Lookup returns the application for an exact id match, or ErrNotFound.
func (s *Service) Lookup(ctx context.Context, id string) (*Application, error) {
	return s.repo.GetByID(ctx, NormalizeID(id))
}

// List returns all applications for the admin review queue.
func (s *Service) List(ctx context.Context) ([]*Application, error) {
	return s.repo.List(ctx)
}
