package patient

import (
	"strings"
	"time"
)

// Priority levels, most urgent first.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// Statuses a patient moves through while admitted.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// Patient maps to the patients table. The string ID doubles as the login
// identifier for patients promoted from bed applications.
type Patient struct {
	ID                string    `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	Age               int       `db:"age" json:"age"`
	Dept              string    `db:"dept" json:"dept"`
	Priority          string    `db:"priority" json:"priority"`
	Status            string    `db:"status" json:"status"`
	WaitMins          int       `db:"wait_mins" json:"wait_mins"`
	DoctorID          *int      `db:"doctor_id" json:"doctor_id,omitempty"`
	Complaint         string    `db:"complaint" json:"complaint"`
	PredictedDuration int       `db:"predicted_duration" json:"predicted_duration"`
	AIScore           float64   `db:"ai_score" json:"ai_score"`
	Email             *string   `db:"email" json:"email,omitempty"`
	PasswordHash      *string   `db:"password_hash" json:"-"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// WithDoctor is a patient row joined with the assigned doctor's display
// attributes for the dashboards.
type WithDoctor struct {
	Patient
	DoctorName  *string `db:"doctor_name" json:"doctor_name,omitempty"`
	DoctorDept  *string `db:"doctor_dept" json:"doctor_dept,omitempty"`
	DoctorColor *string `db:"doctor_color" json:"doctor_color,omitempty"`
}

// NormalizeID applies the single identifier case-folding rule: patient IDs
// are upper-cased at both write and lookup time.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// ValidPriority reports whether p is a known priority level.
func ValidPriority(p string) bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}
