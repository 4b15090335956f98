package domain

import (
	"context"
	"time"
)

// Patient represents a registered patient account.
type Patient struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Age              int       `json:"age"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	PasswordHash     string    `json:"-"`
	ProfilePic       string    `json:"profilePic,omitempty"`
	HistoryOfSurgery []string  `json:"historyOfSurgery"`
	HistoryOfIllness []string  `json:"historyOfIllness"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Principal returns the patient's identity capability.
func (p *Patient) Principal() Principal {
	return Principal{ID: p.ID, Role: RolePatient, Name: p.Name}
}

// Redacted returns a copy with the password hash stripped.
func (p *Patient) Redacted() *Patient {
	c := *p
	c.PasswordHash = ""
	return &c
}

// PatientSummary is the subset of patient fields embedded in consultation
// and prescription views.
type PatientSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	ProfilePic string `json:"profilePic,omitempty"`
}

// PatientRepository is the port for patient persistence.
type PatientRepository interface {
	CreatePatient(ctx context.Context, p *Patient) error
	PatientByID(ctx context.Context, id string) (*Patient, error)
	PatientByEmail(ctx context.Context, email string) (*Patient, error)
	PatientByContact(ctx context.Context, email, phone string) (*Patient, error)
	SetPatientProfilePic(ctx context.Context, id, url string) error
}
