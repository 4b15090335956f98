package domain

import (
	"context"
	"time"
)

// Prescription lifecycle states. A prescription starts as a draft and
// becomes sent once its PDF has been generated and shared.
const (
	PrescriptionDraft = "draft"
	PrescriptionSent  = "sent"
)

// Prescription is a doctor's written advice for a consultation. At most
// one prescription exists per consultation; repeated creates update the
// draft in place.
type Prescription struct {
	ID             string    `json:"id"`
	ConsultationID string    `json:"consultationId"`
	DoctorID       string    `json:"doctorId"`
	PatientID      string    `json:"patientId"`
	CareToBeTaken  string    `json:"careToBeTaken"`
	Medicines      string    `json:"medicines"`
	PDFPath        string    `json:"pdfPath,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	Doctor  *DoctorSummary  `json:"doctor,omitempty"`
	Patient *PatientSummary `json:"patient,omitempty"`
}

// PrescriptionDocument carries the rendered fields for the PDF gateway.
type PrescriptionDocument struct {
	PrescriptionID   string
	DoctorName       string
	DoctorSpecialty  string
	DoctorExperience int
	PatientName      string
	PatientAge       int
	CareToBeTaken    string
	Medicines        string
	Date             time.Time
}

// PrescriptionRepository is the port for prescription persistence.
type PrescriptionRepository interface {
	CreatePrescription(ctx context.Context, p *Prescription) error
	UpdatePrescription(ctx context.Context, p *Prescription) error
	PrescriptionByID(ctx context.Context, id string) (*Prescription, error)
	PrescriptionByConsultation(ctx context.Context, consultationID string) (*Prescription, error)
	PrescriptionsByDoctor(ctx context.Context, doctorID string) ([]Prescription, error)
	// PrescriptionsByPatient returns only sent prescriptions; drafts are
	// invisible to patients.
	PrescriptionsByPatient(ctx context.Context, patientID string) ([]Prescription, error)
}
