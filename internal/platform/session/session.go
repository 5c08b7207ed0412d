// Package session implements server-side login sessions for the dashboard
// roles. The browser carries an HS256-signed cookie holding only a session
// ID; the server-side store (in-memory or redis) is authoritative for the
// role and display attributes, so a session always belongs to exactly one
// role and can be revoked by deleting the record.
package session

import (
	"errors"
	"time"
)

// Roles a session can carry. A session holds exactly one.
const (
	RoleAdmin     = "admin"
	RoleDoctor    = "doctor"
	RolePatient   = "patient"
	RoleApplicant = "applicant"
)

var (
	// ErrNoSession indicates the request carries no valid session.
	ErrNoSession = errors.New("no active session")
)

// Session is the server-side record for one authenticated browser.
type Session struct {
	ID          string    `json:"id"`
	Role        string    `json:"role"`
	SubjectID   string    `json:"subject_id"`
	DisplayName string    `json:"display_name"`
	DisplayDept string    `json:"display_dept"`
	Color       string    `json:"color"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
