// Package dashboard serves the per-role dashboard pages and their JSON
// data endpoints. Statistics marked synthetic are generated display
// numbers, not measurements.
package dashboard

// AdminStats summarizes the whole hospital for the admin dashboard.
type AdminStats struct {
	TotalPatients       int     `json:"total_patients"`
	WaitingPatients     int     `json:"waiting_patients"`
	CriticalPatients    int     `json:"critical_patients"`
	TotalDoctors        int     `json:"total_doctors"`
	AvgWaitMins         float64 `json:"avg_wait_mins"`
	PendingApplications int     `json:"pending_applications"`
	BedUtilization      int     `json:"bed_utilization"`
	OptimizationsToday  int     `json:"optimizations_today"`
	Synthetic           bool    `json:"synthetic_metrics"`
}

// DoctorStats summarizes one doctor's queue.
type DoctorStats struct {
	TotalPatients      int     `json:"total_patients"`
	Waiting            int     `json:"waiting"`
	InProgress         int     `json:"in_progress"`
	Done               int     `json:"done"`
	AvgWaitMins        float64 `json:"avg_wait_mins"`
	Utilization        int     `json:"utilization"`
	OptimizationsToday int     `json:"optimizations_today"`
	Synthetic          bool    `json:"synthetic_metrics"`
}
