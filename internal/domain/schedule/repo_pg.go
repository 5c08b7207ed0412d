package schedule

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mediflow/mediflow/internal/platform/db"
	"github.com/mediflow/mediflow/internal/domain/patient"
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

func (r *repoPG) Create(ctx context.Context, s *Slot) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO schedules (doctor_id, patient_id, patient_name, slot_time, duration_mins, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		s.DoctorID, s.PatientID, s.PatientName, s.SlotTime, s.DurationMins, s.Status, s.Notes).
		Scan(&s.ID)
}

func (r *repoPG) ExistsForDoctorAt(ctx context.Context, doctorID int, slotTime string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT exists(SELECT 1 FROM schedules WHERE doctor_id = $1 AND slot_time = $2)`,
		doctorID, slotTime).Scan(&exists)
	return exists, err
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID int) ([]*Detail, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT s.id, s.doctor_id, s.patient_id, s.patient_name, s.slot_time, s.duration_mins,
			s.status, s.notes, p.priority, p.complaint, p.age, p.dept
		FROM schedules s
		LEFT JOIN patients p ON s.patient_id = p.id
		WHERE s.doctor_id = $1
		ORDER BY s.slot_time`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Detail
	for rows.Next() {
		var d Detail
		if err := rows.Scan(&d.ID, &d.DoctorID, &d.PatientID, &d.PatientName, &d.SlotTime,
			&d.DurationMins, &d.Status, &d.Notes, &d.Priority, &d.Complaint, &d.Age, &d.Dept); err != nil {
			return nil, err
		}
		items = append(items, &d)
	}
	return items, rows.Err()
}

func (r *repoPG) NextForPatient(ctx context.Context, patientID string) (*Slot, error) {
	var s Slot
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, doctor_id, patient_id, patient_name, slot_time, duration_mins, status, notes
		FROM schedules
		WHERE patient_id = $1
		ORDER BY slot_time
		LIMIT 1`, patient.NormalizeID(patientID)).
		Scan(&s.ID, &s.DoctorID, &s.PatientID, &s.PatientName, &s.SlotTime,
			&s.DurationMins, &s.Status, &s.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
