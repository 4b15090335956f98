package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"telemed/internal/domain"
)

const patientCols = "id, name, age, email, phone, password_hash, profile_pic, history_of_surgery, history_of_illness, created_at, updated_at"

func scanPatient(row interface{ Scan(...any) error }) (*domain.Patient, error) {
	var p domain.Patient
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Email, &p.Phone, &p.PasswordHash,
		&p.ProfilePic, pq.Array(&p.HistoryOfSurgery), pq.Array(&p.HistoryOfIllness),
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePatient inserts a new patient record.
func (d *DB) CreatePatient(ctx context.Context, p *domain.Patient) error {
	now := time.Now()
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO patients (`+patientCols+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.Name, p.Age, p.Email, p.Phone, p.PasswordHash, p.ProfilePic,
		pq.Array(p.HistoryOfSurgery), pq.Array(p.HistoryOfIllness), now, now,
	)
	if err != nil {
		return duplicateFieldError(err)
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// PatientByID retrieves a patient by id.
func (d *DB) PatientByID(ctx context.Context, id string) (*domain.Patient, error) {
	return scanPatient(d.sql.QueryRowContext(ctx,
		"SELECT "+patientCols+" FROM patients WHERE id = $1", id))
}

// PatientByEmail retrieves a patient by email.
func (d *DB) PatientByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	return scanPatient(d.sql.QueryRowContext(ctx,
		"SELECT "+patientCols+" FROM patients WHERE email = $1", email))
}

// PatientByContact retrieves the first patient matching either contact field.
func (d *DB) PatientByContact(ctx context.Context, email, phone string) (*domain.Patient, error) {
	return scanPatient(d.sql.QueryRowContext(ctx,
		"SELECT "+patientCols+" FROM patients WHERE email = $1 OR phone = $2 LIMIT 1", email, phone))
}

// SetPatientProfilePic updates the patient's profile image URL.
func (d *DB) SetPatientProfilePic(ctx context.Context, id, url string) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE patients SET profile_pic = $1, updated_at = $2 WHERE id = $3", url, time.Now(), id)
	return err
}
