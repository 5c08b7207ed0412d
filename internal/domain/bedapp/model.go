package bedapp

import (
	"strings"
	"time"
)

// Application statuses. Pending is the only state a decision can leave.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Bed types and their admission charge. Unknown types fall back to the
// general ward price.
var bedPrices = map[string]int{
	"general":      1500,
	"semi-private": 3500,
	"private":      7000,
	"icu":          15000,
}

// PriceFor returns the admission charge for a bed type.
func PriceFor(bedType string) int {
	if p, ok := bedPrices[strings.ToLower(strings.TrimSpace(bedType))]; ok {
		return p
	}
	return bedPrices["general"]
}

// Application maps to the bed_applications table. PasswordHash backs the
// applicant login; the plaintext is handed out once at submission and
// never stored.
type Application struct {
	ID            string     `db:"id" json:"id"`
	ApplicantName string     `db:"applicant_name" json:"applicant_name"`
	Age           int        `db:"age" json:"age"`
	Gender        string     `db:"gender" json:"gender"`
	Contact       string     `db:"contact" json:"contact"`
	Address       string     `db:"address" json:"address"`
	Department    string     `db:"department" json:"department"`
	BedType       string     `db:"bed_type" json:"bed_type"`
	Reason        string     `db:"reason" json:"reason"`
	Priority      string     `db:"priority" json:"priority"`
	Status        string     `db:"status" json:"status"`
	PaymentStatus string     `db:"payment_status" json:"payment_status"`
	PaymentAmount int        `db:"payment_amount" json:"payment_amount"`
	UserID        string     `db:"user_id" json:"user_id"`
	PasswordHash  string     `db:"password_hash" json:"-"`
	AppliedAt     time.Time  `db:"applied_at" json:"applied_at"`
	DecidedAt     *time.Time `db:"decided_at" json:"decided_at,omitempty"`
	Notes         string     `db:"notes" json:"notes"`
}

// Submission is the bed application intake payload.
type Submission struct {
	ApplicantName string `json:"applicant_name" form:"applicant_name" validate:"required"`
	Age           int    `json:"age" form:"age" validate:"required,gt=0,lt=150"`
	Gender        string `json:"gender" form:"gender" validate:"required"`
	Contact       string `json:"contact" form:"contact" validate:"required"`
	Address       string `json:"address" form:"address" validate:"required"`
	Department    string `json:"department" form:"department" validate:"required"`
	BedType       string `json:"bed_type" form:"bed_type" validate:"required"`
	Reason        string `json:"reason" form:"reason" validate:"required"`
	Priority      string `json:"priority" form:"priority"`
}

// Credentials is the one-time bundle returned after a successful
// submission. Password appears here and nowhere else.
type Credentials struct {
	ApplicationID string `json:"application_id"`
	UserID        string `json:"user_id"`
	Password      string `json:"password"`
	PaymentAmount int    `json:"payment_amount"`
}

// NormalizeID upper-cases generated identifiers so lookups are exact
// matches.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
