package patient

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound indicates no patient matches the lookup.
var ErrNotFound = errors.New("patient not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a patient. Callers are the seeder and the bed application
// promotion; both must never duplicate an ID, so Create refuses when the
// normalized ID already exists.
func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.ID == "" {
		return fmt.Errorf("id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	p.ID = NormalizeID(p.ID)
	if p.Priority == "" {
		p.Priority = PriorityMedium
	}
	if !ValidPriority(p.Priority) {
		return fmt.Errorf("invalid priority: %s", p.Priority)
	}
	if p.Status == "" {
		p.Status = StatusWaiting
	}

	exists, err := s.repo.Exists(ctx, p.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("patient %s already exists", p.ID)
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id string) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetWithDoctor(ctx context.Context, id string) (*WithDoctor, error) {
	return s.repo.GetWithDoctor(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*WithDoctor, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int) ([]*Patient, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}
