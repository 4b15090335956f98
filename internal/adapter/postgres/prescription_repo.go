package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"telemed/internal/domain"
)

const prescriptionCols = "id, consultation_id, doctor_id, patient_id, care_to_be_taken, medicines, pdf_path, status, created_at, updated_at"

func scanPrescription(row interface{ Scan(...any) error }) (*domain.Prescription, error) {
	var p domain.Prescription
	err := row.Scan(&p.ID, &p.ConsultationID, &p.DoctorID, &p.PatientID,
		&p.CareToBeTaken, &p.Medicines, &p.PDFPath, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePrescription inserts a new prescription record.
func (d *DB) CreatePrescription(ctx context.Context, p *domain.Prescription) error {
	now := time.Now()
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO prescriptions (`+prescriptionCols+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.ConsultationID, p.DoctorID, p.PatientID,
		p.CareToBeTaken, p.Medicines, p.PDFPath, p.Status, now, now,
	)
	if err != nil {
		return err
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// UpdatePrescription persists changes to content, path and status.
func (d *DB) UpdatePrescription(ctx context.Context, p *domain.Prescription) error {
	now := time.Now()
	_, err := d.sql.ExecContext(ctx,
		`UPDATE prescriptions
		 SET care_to_be_taken = $1, medicines = $2, pdf_path = $3, status = $4, updated_at = $5
		 WHERE id = $6`,
		p.CareToBeTaken, p.Medicines, p.PDFPath, p.Status, now, p.ID,
	)
	if err != nil {
		return err
	}
	p.UpdatedAt = now
	return nil
}

// PrescriptionByID retrieves a prescription by id.
func (d *DB) PrescriptionByID(ctx context.Context, id string) (*domain.Prescription, error) {
	return scanPrescription(d.sql.QueryRowContext(ctx,
		"SELECT "+prescriptionCols+" FROM prescriptions WHERE id = $1", id))
}

// PrescriptionByConsultation retrieves the prescription for a consultation.
func (d *DB) PrescriptionByConsultation(ctx context.Context, consultationID string) (*domain.Prescription, error) {
	return scanPrescription(d.sql.QueryRowContext(ctx,
		"SELECT "+prescriptionCols+" FROM prescriptions WHERE consultation_id = $1", consultationID))
}

// PrescriptionsByDoctor returns a doctor's prescriptions of any status,
// newest first, with the patient summary joined in.
func (d *DB) PrescriptionsByDoctor(ctx context.Context, doctorID string) ([]domain.Prescription, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT pr.id, pr.consultation_id, pr.doctor_id, pr.patient_id, pr.care_to_be_taken,
			pr.medicines, pr.pdf_path, pr.status, pr.created_at, pr.updated_at,
			p.id, p.name, p.age, p.profile_pic
		 FROM prescriptions pr
		 JOIN patients p ON p.id = pr.patient_id
		 WHERE pr.doctor_id = $1
		 ORDER BY pr.created_at DESC`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Prescription
	for rows.Next() {
		var p domain.Prescription
		var ps domain.PatientSummary
		if err := rows.Scan(&p.ID, &p.ConsultationID, &p.DoctorID, &p.PatientID,
			&p.CareToBeTaken, &p.Medicines, &p.PDFPath, &p.Status, &p.CreatedAt, &p.UpdatedAt,
			&ps.ID, &ps.Name, &ps.Age, &ps.ProfilePic); err != nil {
			return nil, err
		}
		p.Patient = &ps
		out = append(out, p)
	}
	return out, rows.Err()
}

// PrescriptionsByPatient returns a patient's sent prescriptions, newest
// first, with the doctor summary joined in. Drafts never reach patients.
func (d *DB) PrescriptionsByPatient(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT pr.id, pr.consultation_id, pr.doctor_id, pr.patient_id, pr.care_to_be_taken,
			pr.medicines, pr.pdf_path, pr.status, pr.created_at, pr.updated_at,
			doc.id, doc.name, doc.specialty, doc.profile_pic
		 FROM prescriptions pr
		 JOIN doctors doc ON doc.id = pr.doctor_id
		 WHERE pr.patient_id = $1 AND pr.status = 'sent'
		 ORDER BY pr.created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Prescription
	for rows.Next() {
		var p domain.Prescription
		var ds domain.DoctorSummary
		if err := rows.Scan(&p.ID, &p.ConsultationID, &p.DoctorID, &p.PatientID,
			&p.CareToBeTaken, &p.Medicines, &p.PDFPath, &p.Status, &p.CreatedAt, &p.UpdatedAt,
			&ds.ID, &ds.Name, &ds.Specialty, &ds.ProfilePic); err != nil {
			return nil, err
		}
		p.Doctor = &ds
		out = append(out, p)
	}
	return out, rows.Err()
}
