package bedapp

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mediflow/mediflow/internal/platform/db"
)

const applicationCols = `id, applicant_name, age, gender, contact, address, department,
	bed_type, reason, priority, status, payment_status, payment_amount,
	user_id, password_hash, applied_at, decided_at, notes`

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

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.ApplicantName, &a.Age, &a.Gender, &a.Contact, &a.Address,
		&a.Department, &a.BedType, &a.Reason, &a.Priority, &a.Status, &a.PaymentStatus,
		&a.PaymentAmount, &a.UserID, &a.PasswordHash, &a.AppliedAt, &a.DecidedAt, &a.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Application) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bed_applications (id, applicant_name, age, gender, contact, address,
			department, bed_type, reason, priority, status, payment_status,
			payment_amount, user_id, password_hash, applied_at, notes)
		VALUES (upper($1), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, upper($14), $15, $16, $17)`,
		a.ID, a.ApplicantName, a.Age, a.Gender, a.Contact, a.Address,
		a.Department, a.BedType, a.Reason, a.Priority, a.Status, a.PaymentStatus,
		a.PaymentAmount, a.UserID, a.PasswordHash, a.AppliedAt, a.Notes)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id string) (*Application, error) {
	return scanApplication(r.conn(ctx).QueryRow(ctx,
		`SELECT `+applicationCols+` FROM bed_applications WHERE id = upper($1)`, id))
}

func (r *repoPG) GetByUserID(ctx context.Context, userID string) (*Application, error) {
	return scanApplication(r.conn(ctx).QueryRow(ctx,
		`SELECT `+applicationCols+` FROM bed_applications WHERE user_id = upper($1)`, userID))
}

func (r *repoPG) List(ctx context.Context) ([]*Application, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+applicationCols+`
		FROM bed_applications
		ORDER BY CASE WHEN status = 'pending' THEN 0 ELSE 1 END, applied_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.ApplicantName, &a.Age, &a.Gender, &a.Contact,
			&a.Address, &a.Department, &a.BedType, &a.Reason, &a.Priority, &a.Status,
			&a.PaymentStatus, &a.PaymentAmount, &a.UserID, &a.PasswordHash,
			&a.AppliedAt, &a.DecidedAt, &a.Notes); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func (r *repoPG) UpdateStatusIfPending(ctx context.Context, id, status string, decidedAt time.Time) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE bed_applications
		SET status = $2, decided_at = $3
		WHERE id = upper($1) AND status = 'pending'`,
		id, status, decidedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
