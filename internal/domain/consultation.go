package domain

import (
	"context"
	"time"
)

// Consultation lifecycle states.
const (
	ConsultationPending   = "pending"
	ConsultationCompleted = "completed"
	ConsultationCancelled = "cancelled"
)

// RecentSurgery records whether the patient had a recent surgery and how
// long ago.
type RecentSurgery struct {
	HasSurgery bool   `json:"hasSurgery"`
	TimeSpan   string `json:"timeSpan,omitempty"`
}

// FamilyMedicalHistory captures the intake questionnaire answers.
type FamilyMedicalHistory struct {
	Diabetics string `json:"diabetics"`
	Allergies string `json:"allergies"`
	Others    string `json:"others"`
}

// Valid diabetics answers.
const (
	Diabetic    = "diabetic"
	NonDiabetic = "non-diabetic"
)

// Consultation is a patient's request for a doctor's attention.
type Consultation struct {
	ID                    string               `json:"id"`
	PatientID             string               `json:"patientId"`
	DoctorID              string               `json:"doctorId"`
	CurrentIllnessHistory string               `json:"currentIllnessHistory"`
	RecentSurgery         RecentSurgery        `json:"recentSurgery"`
	FamilyMedicalHistory  FamilyMedicalHistory `json:"familyMedicalHistory"`
	TransactionID         string               `json:"transactionId"`
	Status                string               `json:"status"`
	CreatedAt             time.Time            `json:"createdAt"`
	UpdatedAt             time.Time            `json:"updatedAt"`

	// Populated by list/get queries for response shaping; nil otherwise.
	Doctor  *DoctorSummary  `json:"doctor,omitempty"`
	Patient *PatientSummary `json:"patient,omitempty"`
}

// ConsultationRepository is the port for consultation persistence. List
// results are ordered newest first and carry the counterpart summary.
type ConsultationRepository interface {
	CreateConsultation(ctx context.Context, c *Consultation) error
	ConsultationByID(ctx context.Context, id string) (*Consultation, error)
	ConsultationsByDoctor(ctx context.Context, doctorID string) ([]Consultation, error)
	ConsultationsByPatient(ctx context.Context, patientID string) ([]Consultation, error)
	SetConsultationStatus(ctx context.Context, id, status string) error
}
