package patient

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mediflow/mediflow/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const cols = `id, name, age, dept, priority, status, wait_mins, doctor_id,
	complaint, predicted_duration, ai_score, email, password_hash, created_at`

// priorityOrder sorts critical first on every listing.
const priorityOrder = `CASE p.priority
	WHEN 'critical' THEN 1 WHEN 'high' THEN 2 WHEN 'medium' THEN 3 ELSE 4 END`

func scan(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Dept, &p.Priority, &p.Status, &p.WaitMins,
		&p.DoctorID, &p.Complaint, &p.PredictedDuration, &p.AIScore, &p.Email,
		&p.PasswordHash, &p.CreatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = NormalizeID(p.ID)
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients (id, name, age, dept, priority, status, wait_mins, doctor_id,
			complaint, predicted_duration, ai_score, email, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, lower($12), $13)`,
		p.ID, p.Name, p.Age, p.Dept, p.Priority, p.Status, p.WaitMins, p.DoctorID,
		p.Complaint, p.PredictedDuration, p.AIScore, p.Email, p.PasswordHash)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id string) (*Patient, error) {
	p, err := scan(r.conn(ctx).QueryRow(ctx,
		`SELECT `+cols+` FROM patients WHERE id = $1`, NormalizeID(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *repoPG) GetByEmailOrID(ctx context.Context, identifier string) (*Patient, error) {
	identifier = strings.TrimSpace(identifier)
	p, err := scan(r.conn(ctx).QueryRow(ctx,
		`SELECT `+cols+` FROM patients WHERE email = lower($1) OR id = upper($1)`, identifier))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *repoPG) GetWithDoctor(ctx context.Context, id string) (*WithDoctor, error) {
	var p WithDoctor
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT p.id, p.name, p.age, p.dept, p.priority, p.status, p.wait_mins, p.doctor_id,
			p.complaint, p.predicted_duration, p.ai_score, p.email, p.password_hash, p.created_at,
			d.name, d.dept, d.color
		FROM patients p
		LEFT JOIN doctors d ON p.doctor_id = d.id
		WHERE p.id = $1`, NormalizeID(id)).
		Scan(&p.ID, &p.Name, &p.Age, &p.Dept, &p.Priority, &p.Status, &p.WaitMins,
			&p.DoctorID, &p.Complaint, &p.PredictedDuration, &p.AIScore, &p.Email,
			&p.PasswordHash, &p.CreatedAt, &p.DoctorName, &p.DoctorDept, &p.DoctorColor)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*WithDoctor, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT p.id, p.name, p.age, p.dept, p.priority, p.status, p.wait_mins, p.doctor_id,
			p.complaint, p.predicted_duration, p.ai_score, p.email, p.password_hash, p.created_at,
			d.name, d.dept, d.color
		FROM patients p
		LEFT JOIN doctors d ON p.doctor_id = d.id
		ORDER BY `+priorityOrder+`, p.id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*WithDoctor
	for rows.Next() {
		var p WithDoctor
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Dept, &p.Priority, &p.Status, &p.WaitMins,
			&p.DoctorID, &p.Complaint, &p.PredictedDuration, &p.AIScore, &p.Email,
			&p.PasswordHash, &p.CreatedAt, &p.DoctorName, &p.DoctorDept, &p.DoctorColor); err != nil {
			return nil, 0, err
		}
		items = append(items, &p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID int) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+cols+` FROM patients p
		WHERE doctor_id = $1
		ORDER BY `+priorityOrder+`, p.id`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *repoPG) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM patients WHERE id = $1)`, NormalizeID(id)).Scan(&exists)
	return exists, err
}
