package patient

import "context"

// Repository defines the persistence interface for patients.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id string) (*Patient, error)
	// GetByEmailOrID resolves a login identifier: a lower-cased email match
	// or an upper-cased ID match.
	GetByEmailOrID(ctx context.Context, identifier string) (*Patient, error)
	GetWithDoctor(ctx context.Context, id string) (*WithDoctor, error)
	List(ctx context.Context, limit, offset int) ([]*WithDoctor, int, error)
	ListByDoctor(ctx context.Context, doctorID int) ([]*Patient, error)
	Exists(ctx context.Context, id string) (bool, error)
}
