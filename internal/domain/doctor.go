// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Doctor represents a registered doctor account.
type Doctor struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Specialty       string    `json:"specialty"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	PasswordHash    string    `json:"-"`
	Experience      int       `json:"experience"`
	ProfilePic      string    `json:"profilePic,omitempty"`
	PaymentID       string    `json:"paymentId,omitempty"`
	ConsultationFee float64   `json:"consultationFee"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Principal returns the doctor's identity capability for logging and
// response shaping. Authorization never branches on it; the role-scoped
// resolvers handle that.
func (d *Doctor) Principal() Principal {
	return Principal{ID: d.ID, Role: RoleDoctor, Name: d.Name}
}

// Redacted returns a copy safe to expose downstream of the session
// resolver. The password hash never leaves the credential store layer.
func (d *Doctor) Redacted() *Doctor {
	c := *d
	c.PasswordHash = ""
	return &c
}

// DoctorSummary is the subset of doctor fields embedded in consultation
// and prescription views.
type DoctorSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Specialty  string `json:"specialty"`
	ProfilePic string `json:"profilePic,omitempty"`
}

// DoctorRepository is the port for doctor persistence.
type DoctorRepository interface {
	CreateDoctor(ctx context.Context, d *Doctor) error
	DoctorByID(ctx context.Context, id string) (*Doctor, error)
	DoctorByEmail(ctx context.Context, email string) (*Doctor, error)
	// DoctorByContact returns the first doctor matching either contact
	// field, used for the pre-create duplicate check.
	DoctorByContact(ctx context.Context, email, phone string) (*Doctor, error)
	ListDoctors(ctx context.Context) ([]Doctor, error)
	SetDoctorProfilePic(ctx context.Context, id, url string) error
}
