// Package seed loads the sample CSV data sets into the store. Seeding is
// idempotent: rows whose natural key already exists are skipped, so the
// command can run against a non-empty database.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/mediflow/mediflow/internal/domain/doctor"
	"github.com/mediflow/mediflow/internal/domain/patient"
	"github.com/mediflow/mediflow/internal/domain/schedule"
	"github.com/mediflow/mediflow/internal/platform/password"
)

type Seeder struct {
	doctors   *doctor.Service
	patients  patient.Repository
	schedules schedule.Repository
	log       zerolog.Logger
}

func New(doctors *doctor.Service, patients patient.Repository, schedules schedule.Repository, log zerolog.Logger) *Seeder {
	return &Seeder{doctors: doctors, patients: patients, schedules: schedules, log: log}
}

// Run loads doctors.csv, patients.csv and schedules.csv from dir, in
// foreign-key order.
func (s *Seeder) Run(ctx context.Context, dir string) error {
	doctorIDs, err := s.loadDoctors(ctx, filepath.Join(dir, "doctors.csv"))
	if err != nil {
		return fmt.Errorf("seed doctors: %w", err)
	}
	if err := s.loadPatients(ctx, filepath.Join(dir, "patients.csv"), doctorIDs); err != nil {
		return fmt.Errorf("seed patients: %w", err)
	}
	if err := s.loadSchedules(ctx, filepath.Join(dir, "schedules.csv"), doctorIDs); err != nil {
		return fmt.Errorf("seed schedules: %w", err)
	}
	return nil
}

// readCSV returns the rows of a headered CSV file as column-name maps.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}
	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			row[col] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// loadDoctors inserts doctors and returns email -> id for FK resolution.
func (s *Seeder) loadDoctors(ctx context.Context, path string) (map[string]int, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]int, len(rows))
	for _, row := range rows {
		existing, err := s.doctors.GetByEmail(ctx, row["email"])
		if err == nil {
			ids[row["email"]] = existing.ID
			continue
		}
		if !errors.Is(err, doctor.ErrNotFound) {
			return nil, err
		}
		hash, err := password.Hash(row["password"])
		if err != nil {
			return nil, err
		}
		d := &doctor.Doctor{
			Name:         row["name"],
			Dept:         row["dept"],
			Email:        row["email"],
			PasswordHash: hash,
			Color:        row["color"],
		}
		if err := s.doctors.Create(ctx, d); err != nil {
			return nil, err
		}
		ids[row["email"]] = d.ID
		s.log.Info().Str("email", d.Email).Str("dept", d.Dept).Msg("seeded doctor")
	}
	return ids, nil
}

func (s *Seeder) loadPatients(ctx context.Context, path string, doctorIDs map[string]int) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		id := patient.NormalizeID(row["id"])
		exists, err := s.patients.Exists(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		p := &patient.Patient{
			ID:        id,
			Name:      row["name"],
			Dept:      row["dept"],
			Priority:  row["priority"],
			Status:    row["status"],
			Complaint: row["complaint"],
		}
		p.Age, _ = strconv.Atoi(row["age"])
		p.WaitMins, _ = strconv.Atoi(row["wait_mins"])
		p.PredictedDuration, _ = strconv.Atoi(row["predicted_duration"])
		p.AIScore, _ = strconv.ParseFloat(row["ai_score"], 64)
		if docID, ok := doctorIDs[row["doctor_email"]]; ok {
			p.DoctorID = &docID
		}
		if email := row["email"]; email != "" {
			p.Email = &email
		}
		if plain := row["password"]; plain != "" {
			hash, err := password.Hash(plain)
			if err != nil {
				return err
			}
			p.PasswordHash = &hash
		}
		if err := s.patients.Create(ctx, p); err != nil {
			return err
		}
		s.log.Info().Str("id", p.ID).Msg("seeded patient")
	}
	return nil
}

func (s *Seeder) loadSchedules(ctx context.Context, path string, doctorIDs map[string]int) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	seeded := 0
	for _, row := range rows {
		docID, ok := doctorIDs[row["doctor_email"]]
		if !ok {
			return fmt.Errorf("schedule references unknown doctor %q", row["doctor_email"])
		}
		exists, err := s.schedules.ExistsForDoctorAt(ctx, docID, row["slot_time"])
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		slot := &schedule.Slot{
			DoctorID:    docID,
			PatientName: row["patient_name"],
			SlotTime:    row["slot_time"],
			Status:      row["status"],
			Notes:       row["notes"],
		}
		slot.DurationMins, _ = strconv.Atoi(row["duration_mins"])
		if pid := row["patient_id"]; pid != "" {
			id := patient.NormalizeID(pid)
			slot.PatientID = &id
		}
		if err := s.schedules.Create(ctx, slot); err != nil {
			return err
		}
		seeded++
	}
	s.log.Info().Int("slots", seeded).Msg("seeded schedules")
	return nil
}
