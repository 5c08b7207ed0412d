// Package identity authenticates login attempts against the four principal
// kinds the service knows about and owns the login/logout endpoints.
package identity

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/mediflow/mediflow/internal/domain/bedapp"
	"github.com/mediflow/mediflow/internal/domain/doctor"
	"github.com/mediflow/mediflow/internal/domain/patient"
	"github.com/mediflow/mediflow/internal/platform/password"
	"github.com/mediflow/mediflow/internal/platform/session"
)

// ErrInvalidCredentials is the single failure returned for any unmatched
// login attempt. Callers must not reveal which lookup stage failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Principal is a successfully authenticated identity, tagged with its role.
type Principal struct {
	Role        string
	SubjectID   string
	DisplayName string
	DisplayDept string
	Color       string
}

// AdminCredential is the configured admin login pair. The password is
// compared as configured; admins are not database rows.
type AdminCredential struct {
	Email    string
	Password string
}

// Resolver authenticates an identifier/secret pair by trying each principal
// kind in a fixed order: admin, doctor by email, patient by email or ID,
// applicant by user ID. The first hash-verified match wins.
type Resolver struct {
	admin      AdminCredential
	doctors    doctor.Repository
	patients   patient.Repository
	applicants bedapp.Repository
}

func NewResolver(admin AdminCredential, doctors doctor.Repository, patients patient.Repository, applicants bedapp.Repository) *Resolver {
	return &Resolver{admin: admin, doctors: doctors, patients: patients, applicants: applicants}
}

func (r *Resolver) Resolve(ctx context.Context, identifier, secret string) (*Principal, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || secret == "" {
		return nil, ErrInvalidCredentials
	}

	if strings.EqualFold(identifier, r.admin.Email) && secret == r.admin.Password {
		return &Principal{
			Role:        session.RoleAdmin,
			SubjectID:   strings.ToLower(r.admin.Email),
			DisplayName: "Administrator",
		}, nil
	}

	d, err := r.doctors.GetByEmail(ctx, identifier)
	switch {
	case err == nil:
		if ok, _ := password.Verify(d.PasswordHash, secret); ok {
			return &Principal{
				Role:        session.RoleDoctor,
				SubjectID:   strconv.Itoa(d.ID),
				DisplayName: d.Name,
				DisplayDept: d.Dept,
				Color:       d.Color,
			}, nil
		}
	case !errors.Is(err, doctor.ErrNotFound):
		return nil, err
	}

	p, err := r.patients.GetByEmailOrID(ctx, identifier)
	switch {
	case err == nil:
		if p.PasswordHash != nil {
			if ok, _ := password.Verify(*p.PasswordHash, secret); ok {
				return &Principal{
					Role:        session.RolePatient,
					SubjectID:   p.ID,
					DisplayName: p.Name,
					DisplayDept: p.Dept,
				}, nil
			}
		}
	case !errors.Is(err, patient.ErrNotFound):
		return nil, err
	}

	a, err := r.applicants.GetByUserID(ctx, bedapp.NormalizeID(identifier))
	switch {
	case err == nil:
		if ok, _ := password.Verify(a.PasswordHash, secret); ok {
			return &Principal{
				Role:        session.RoleApplicant,
				SubjectID:   a.ID,
				DisplayName: a.ApplicantName,
				DisplayDept: a.Department,
			}, nil
		}
	case !errors.Is(err, bedapp.ErrNotFound):
		return nil, err
	}

	return nil, ErrInvalidCredentials
}
