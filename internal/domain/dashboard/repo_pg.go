package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) StatsRepository {
	return &repoPG{pool: pool}
}

func (r *repoPG) AdminStats(ctx context.Context) (*AdminStats, error) {
	var s AdminStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM patients),
			(SELECT count(*) FROM patients WHERE status = 'waiting'),
			(SELECT count(*) FROM patients WHERE priority = 'critical'),
			(SELECT count(*) FROM doctors),
			(SELECT coalesce(avg(wait_mins), 0) FROM patients WHERE status = 'waiting'),
			(SELECT count(*) FROM bed_applications WHERE status = 'pending')`).
		Scan(&s.TotalPatients, &s.WaitingPatients, &s.CriticalPatients,
			&s.TotalDoctors, &s.AvgWaitMins, &s.PendingApplications)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repoPG) DoctorStats(ctx context.Context, doctorID int) (*DoctorStats, error) {
	var s DoctorStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			count(*),
			count(*) FILTER (WHERE status = 'waiting'),
			count(*) FILTER (WHERE status = 'in_progress'),
			count(*) FILTER (WHERE status = 'done'),
			coalesce(avg(wait_mins) FILTER (WHERE status = 'waiting'), 0)
		FROM patients
		WHERE doctor_id = $1`, doctorID).
		Scan(&s.TotalPatients, &s.Waiting, &s.InProgress, &s.Done, &s.AvgWaitMins)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
