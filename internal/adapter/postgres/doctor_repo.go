package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"telemed/internal/domain"
)

const doctorCols = "id, name, specialty, email, phone, password_hash, experience, profile_pic, payment_id, consultation_fee, created_at, updated_at"

func scanDoctor(row interface{ Scan(...any) error }) (*domain.Doctor, error) {
	var d domain.Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Specialty, &d.Email, &d.Phone, &d.PasswordHash,
		&d.Experience, &d.ProfilePic, &d.PaymentID, &d.ConsultationFee, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDoctor inserts a new doctor record.
func (d *DB) CreateDoctor(ctx context.Context, doc *domain.Doctor) error {
	now := time.Now()
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO doctors (`+doctorCols+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		doc.ID, doc.Name, doc.Specialty, doc.Email, doc.Phone, doc.PasswordHash,
		doc.Experience, doc.ProfilePic, doc.PaymentID, doc.ConsultationFee, now, now,
	)
	if err != nil {
		return duplicateFieldError(err)
	}
	doc.CreatedAt = now
	doc.UpdatedAt = now
	return nil
}

// DoctorByID retrieves a doctor by id.
func (d *DB) DoctorByID(ctx context.Context, id string) (*domain.Doctor, error) {
	return scanDoctor(d.sql.QueryRowContext(ctx,
		"SELECT "+doctorCols+" FROM doctors WHERE id = $1", id))
}

// DoctorByEmail retrieves a doctor by email.
func (d *DB) DoctorByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	return scanDoctor(d.sql.QueryRowContext(ctx,
		"SELECT "+doctorCols+" FROM doctors WHERE email = $1", email))
}

// DoctorByContact retrieves the first doctor matching either contact field.
func (d *DB) DoctorByContact(ctx context.Context, email, phone string) (*domain.Doctor, error) {
	return scanDoctor(d.sql.QueryRowContext(ctx,
		"SELECT "+doctorCols+" FROM doctors WHERE email = $1 OR phone = $2 LIMIT 1", email, phone))
}

// ListDoctors returns every doctor, newest first.
func (d *DB) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+doctorCols+" FROM doctors ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Doctor
	for rows.Next() {
		doc, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	return out, rows.Err()
}

// SetDoctorProfilePic updates the doctor's profile image URL.
func (d *DB) SetDoctorProfilePic(ctx context.Context, id, url string) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE doctors SET profile_pic = $1, updated_at = $2 WHERE id = $3", url, time.Now(), id)
	return err
}
