package doctor

import "context"

// Repository defines the persistence interface for doctors.
type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id int) (*Doctor, error)
	GetByEmail(ctx context.Context, email string) (*Doctor, error)
	List(ctx context.Context, limit, offset int) ([]*Doctor, int, error)
	ListByDept(ctx context.Context, dept string) ([]*Doctor, error)
}
