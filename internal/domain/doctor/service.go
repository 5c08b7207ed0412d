package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates no doctor matches the lookup.
var ErrNotFound = errors.New("doctor not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a doctor. Used only by seeding.
func (s *Service) Create(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Dept == "" {
		return fmt.Errorf("dept is required")
	}
	if d.Email == "" {
		return fmt.Errorf("email is required")
	}
	if d.PasswordHash == "" {
		return fmt.Errorf("password_hash is required")
	}
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	if d.Color == "" {
		d.Color = "#0EA5E9"
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*Doctor, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByDept(ctx context.Context, dept string) ([]*Doctor, error) {
	return s.repo.ListByDept(ctx, dept)
}
