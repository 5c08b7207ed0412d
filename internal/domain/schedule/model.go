package schedule

// Slot maps to the schedules table: one appointment slot on a doctor's day.
type Slot struct {
	ID           int     `db:"id" json:"id"`
	DoctorID     int     `db:"doctor_id" json:"doctor_id"`
	PatientID    *string `db:"patient_id" json:"patient_id,omitempty"`
	PatientName  string  `db:"patient_name" json:"patient_name"`
	SlotTime     string  `db:"slot_time" json:"slot_time"`
	DurationMins int     `db:"duration_mins" json:"duration_mins"`
	Status       string  `db:"status" json:"status"`
	Notes        string  `db:"notes" json:"notes"`
}

// Detail is a slot joined with the booked patient's triage attributes for
// the doctor dashboard.
type Detail struct {
	Slot
	Priority  *string `db:"priority" json:"priority,omitempty"`
	Complaint *string `db:"complaint" json:"complaint,omitempty"`
	Age       *int    `db:"age" json:"age,omitempty"`
	Dept      *string `db:"dept" json:"dept,omitempty"`
}
