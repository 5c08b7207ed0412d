package bedapp

import (
	"context"
	"time"
)

// Repository defines the persistence interface for bed applications.
type Repository interface {
	// Create inserts a new application. ErrConflict signals a collision on
	// a generated identifier so the caller can regenerate and retry.
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	GetByUserID(ctx context.Context, userID string) (*Application, error)
	// List returns all applications, pending first, then newest applied_at.
	List(ctx context.Context) ([]*Application, error)
	// UpdateStatusIfPending moves a pending application to status and
	// reports whether a row changed. False means the id is unknown or the
	// application was already decided.
	UpdateStatusIfPending(ctx context.Context, id, status string, decidedAt time.Time) (bool, error)
}
