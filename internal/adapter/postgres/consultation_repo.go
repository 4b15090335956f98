package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"telemed/internal/domain"
)

const consultationCols = `c.id, c.patient_id, c.doctor_id, c.current_illness_history,
	c.has_surgery, c.surgery_time_span, c.diabetics, c.allergies, c.others,
	c.transaction_id, c.status, c.created_at, c.updated_at`

func scanConsultation(row interface{ Scan(...any) error }) (*domain.Consultation, error) {
	var c domain.Consultation
	err := row.Scan(&c.ID, &c.PatientID, &c.DoctorID, &c.CurrentIllnessHistory,
		&c.RecentSurgery.HasSurgery, &c.RecentSurgery.TimeSpan,
		&c.FamilyMedicalHistory.Diabetics, &c.FamilyMedicalHistory.Allergies, &c.FamilyMedicalHistory.Others,
		&c.TransactionID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateConsultation inserts a new consultation record.
func (d *DB) CreateConsultation(ctx context.Context, c *domain.Consultation) error {
	now := time.Now()
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO consultations (id, patient_id, doctor_id, current_illness_history,
			has_surgery, surgery_time_span, diabetics, allergies, others,
			transaction_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		c.ID, c.PatientID, c.DoctorID, c.CurrentIllnessHistory,
		c.RecentSurgery.HasSurgery, c.RecentSurgery.TimeSpan,
		c.FamilyMedicalHistory.Diabetics, c.FamilyMedicalHistory.Allergies, c.FamilyMedicalHistory.Others,
		c.TransactionID, c.Status, now, now,
	)
	if err != nil {
		return err
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

// ConsultationByID retrieves a consultation by id.
func (d *DB) ConsultationByID(ctx context.Context, id string) (*domain.Consultation, error) {
	return scanConsultation(d.sql.QueryRowContext(ctx,
		"SELECT "+consultationCols+" FROM consultations c WHERE c.id = $1", id))
}

// ConsultationsByDoctor returns a doctor's consultations, newest first,
// with the patient summary joined in.
func (d *DB) ConsultationsByDoctor(ctx context.Context, doctorID string) ([]domain.Consultation, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT `+consultationCols+`, p.id, p.name, p.age, p.profile_pic
		 FROM consultations c
		 JOIN patients p ON p.id = c.patient_id
		 WHERE c.doctor_id = $1
		 ORDER BY c.created_at DESC`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Consultation
	for rows.Next() {
		var c domain.Consultation
		var ps domain.PatientSummary
		if err := rows.Scan(&c.ID, &c.PatientID, &c.DoctorID, &c.CurrentIllnessHistory,
			&c.RecentSurgery.HasSurgery, &c.RecentSurgery.TimeSpan,
			&c.FamilyMedicalHistory.Diabetics, &c.FamilyMedicalHistory.Allergies, &c.FamilyMedicalHistory.Others,
			&c.TransactionID, &c.Status, &c.CreatedAt, &c.UpdatedAt,
			&ps.ID, &ps.Name, &ps.Age, &ps.ProfilePic); err != nil {
			return nil, err
		}
		c.Patient = &ps
		out = append(out, c)
	}
	return out, rows.Err()
}

// ConsultationsByPatient returns a patient's consultations, newest first,
// with the doctor summary joined in.
func (d *DB) ConsultationsByPatient(ctx context.Context, patientID string) ([]domain.Consultation, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT `+consultationCols+`, doc.id, doc.name, doc.specialty, doc.profile_pic
		 FROM consultations c
		 JOIN doctors doc ON doc.id = c.doctor_id
		 WHERE c.patient_id = $1
		 ORDER BY c.created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Consultation
	for rows.Next() {
		var c domain.Consultation
		var ds domain.DoctorSummary
		if err := rows.Scan(&c.ID, &c.PatientID, &c.DoctorID, &c.CurrentIllnessHistory,
			&c.RecentSurgery.HasSurgery, &c.RecentSurgery.TimeSpan,
			&c.FamilyMedicalHistory.Diabetics, &c.FamilyMedicalHistory.Allergies, &c.FamilyMedicalHistory.Others,
			&c.TransactionID, &c.Status, &c.CreatedAt, &c.UpdatedAt,
			&ds.ID, &ds.Name, &ds.Specialty, &ds.ProfilePic); err != nil {
			return nil, err
		}
		c.Doctor = &ds
		out = append(out, c)
	}
	return out, rows.Err()
}

// SetConsultationStatus updates a consultation's lifecycle status.
func (d *DB) SetConsultationStatus(ctx context.Context, id, status string) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE consultations SET status = $1, updated_at = $2 WHERE id = $3", status, time.Now(), id)
	return err
}
