package dashboard

import "context"

// StatsRepository computes the aggregate counts behind the dashboards.
type StatsRepository interface {
	AdminStats(ctx context.Context) (*AdminStats, error)
	DoctorStats(ctx context.Context, doctorID int) (*DoctorStats, error)
}
