// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"telemed/internal/domain"
)

// DB wraps a *sql.DB and implements the domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS doctors (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			specialty TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			experience INTEGER NOT NULL,
			profile_pic TEXT NOT NULL DEFAULT '',
			payment_id TEXT NOT NULL DEFAULT '',
			consultation_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_doctors_email ON doctors(email);",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_doctors_phone ON doctors(phone);",
		`CREATE TABLE IF NOT EXISTS patients (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			age INTEGER NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			profile_pic TEXT NOT NULL DEFAULT '',
			history_of_surgery TEXT[] NOT NULL DEFAULT '{}',
			history_of_illness TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_patients_email ON patients(email);",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_patients_phone ON patients(phone);",
		`CREATE TABLE IF NOT EXISTS consultations (
			id TEXT PRIMARY KEY,
			patient_id TEXT NOT NULL REFERENCES patients(id),
			doctor_id TEXT NOT NULL REFERENCES doctors(id),
			current_illness_history TEXT NOT NULL,
			has_surgery BOOLEAN NOT NULL DEFAULT FALSE,
			surgery_time_span TEXT NOT NULL DEFAULT '',
			diabetics TEXT NOT NULL CHECK(diabetics IN ('diabetic','non-diabetic')),
			allergies TEXT NOT NULL DEFAULT '',
			others TEXT NOT NULL DEFAULT '',
			transaction_id TEXT NOT NULL,
			status TEXT NOT NULL CHECK(status IN ('pending','completed','cancelled')),
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_consultations_doctor_id ON consultations(doctor_id);",
		"CREATE INDEX IF NOT EXISTS idx_consultations_patient_id ON consultations(patient_id);",
		`CREATE TABLE IF NOT EXISTS prescriptions (
			id TEXT PRIMARY KEY,
			consultation_id TEXT NOT NULL UNIQUE REFERENCES consultations(id),
			doctor_id TEXT NOT NULL REFERENCES doctors(id),
			patient_id TEXT NOT NULL REFERENCES patients(id),
			care_to_be_taken TEXT NOT NULL,
			medicines TEXT NOT NULL DEFAULT '',
			pdf_path TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL CHECK(status IN ('draft','sent')),
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_prescriptions_doctor_id ON prescriptions(doctor_id);",
		"CREATE INDEX IF NOT EXISTS idx_prescriptions_patient_id ON prescriptions(patient_id);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// duplicateFieldError maps a unique-index violation onto the domain
// duplicate error for the offending contact field. The unique indexes
// are the backstop for the check-then-create race on signup.
func duplicateFieldError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return err
	}
	if strings.Contains(pqErr.Constraint, "phone") {
		return &domain.DuplicateError{Field: "phone"}
	}
	return &domain.DuplicateError{Field: "email"}
}
