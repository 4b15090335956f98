package app

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"telemed/internal/domain"
	"telemed/internal/token"
)

// PatientService handles patient registration and login. It mirrors
// DoctorService but runs against the patient store only; the two roles
// never share a lookup path.
type PatientService struct {
	patients domain.PatientRepository
	tokens   *token.Service
}

// NewPatientService creates a PatientService backed by the given repository.
func NewPatientService(patients domain.PatientRepository, tokens *token.Service) *PatientService {
	return &PatientService{patients: patients, tokens: tokens}
}

// PatientSignup is the signup request payload.
type PatientSignup struct {
	Name             string   `json:"name"`
	Age              int      `json:"age"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Password         string   `json:"password"`
	ProfilePic       string   `json:"profilePic"`
	HistoryOfSurgery []string `json:"historyOfSurgery"`
	HistoryOfIllness []string `json:"historyOfIllness"`
}

// Signup validates the payload, hashes the password and creates the
// patient record, returning the redacted record and a session token.
func (s *PatientService) Signup(ctx context.Context, in PatientSignup) (*domain.Patient, string, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Phone == "" || in.Age <= 0 {
		return nil, "", domain.Validationf("all fields are required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, "", domain.Validationf("password must be at least %d characters", minPasswordLen)
	}
	if !validEmail(in.Email) {
		return nil, "", domain.Validationf("invalid email format")
	}

	if existing, err := s.patients.PatientByContact(ctx, in.Email, in.Phone); err != nil {
		return nil, "", err
	} else if existing != nil {
		if existing.Phone == in.Phone {
			return nil, "", &domain.DuplicateError{Field: "phone"}
		}
		return nil, "", &domain.DuplicateError{Field: "email"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	p := &domain.Patient{
		ID:               uuid.NewString(),
		Name:             in.Name,
		Age:              in.Age,
		Email:            in.Email,
		Phone:            in.Phone,
		PasswordHash:     string(hash),
		ProfilePic:       in.ProfilePic,
		HistoryOfSurgery: in.HistoryOfSurgery,
		HistoryOfIllness: in.HistoryOfIllness,
	}
	if err := s.patients.CreatePatient(ctx, p); err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.Issue(p.ID)
	if err != nil {
		return nil, "", err
	}
	return p.Redacted(), tok, nil
}

// ByID returns the redacted patient, or ErrNotFound.
func (s *PatientService) ByID(ctx context.Context, id string) (*domain.Patient, error) {
	p, err := s.patients.PatientByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p.Redacted(), nil
}

// Login verifies the credentials and issues a session token.
func (s *PatientService) Login(ctx context.Context, email, password string) (*domain.Patient, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.Validationf("all fields are required")
	}

	p, err := s.patients.PatientByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if p == nil {
		return nil, "", domain.ErrNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrUnauthorized
	}

	tok, err := s.tokens.Issue(p.ID)
	if err != nil {
		return nil, "", err
	}
	return p.Redacted(), tok, nil
}
