package app

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"telemed/internal/domain"
	"telemed/internal/token"
)

// DoctorService handles doctor registration, login and directory reads.
type DoctorService struct {
	doctors domain.DoctorRepository
	tokens  *token.Service
}

// NewDoctorService creates a DoctorService backed by the given repository.
func NewDoctorService(doctors domain.DoctorRepository, tokens *token.Service) *DoctorService {
	return &DoctorService{doctors: doctors, tokens: tokens}
}

// DoctorSignup is the signup request payload.
type DoctorSignup struct {
	Name            string  `json:"name"`
	Specialty       string  `json:"specialty"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Password        string  `json:"password"`
	Experience      int     `json:"experience"`
	ProfilePic      string  `json:"profilePic"`
	ConsultationFee float64 `json:"consultationFee"`
}

// Signup validates the payload, hashes the password and creates the
// doctor record, returning the redacted record and a session token.
// The password is hashed exactly once, here; repositories only ever see
// the hash.
func (s *DoctorService) Signup(ctx context.Context, in DoctorSignup) (*domain.Doctor, string, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Specialty == "" || in.Phone == "" || in.Experience <= 0 {
		return nil, "", domain.Validationf("all fields are required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, "", domain.Validationf("password must be at least %d characters", minPasswordLen)
	}
	if !validEmail(in.Email) {
		return nil, "", domain.Validationf("invalid email format")
	}

	// Check-then-create: the unique indexes on email and phone are the
	// backstop under concurrent signups of the same contact.
	if existing, err := s.doctors.DoctorByContact(ctx, in.Email, in.Phone); err != nil {
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

	d := &domain.Doctor{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Specialty:       in.Specialty,
		Email:           in.Email,
		Phone:           in.Phone,
		PasswordHash:    string(hash),
		Experience:      in.Experience,
		ProfilePic:      in.ProfilePic,
		ConsultationFee: in.ConsultationFee,
	}
	if err := s.doctors.CreateDoctor(ctx, d); err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.Issue(d.ID)
	if err != nil {
		return nil, "", err
	}
	return d.Redacted(), tok, nil
}

// Login verifies the credentials and issues a session token. An unknown
// email is ErrNotFound; a wrong password is ErrUnauthorized.
func (s *DoctorService) Login(ctx context.Context, email, password string) (*domain.Doctor, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.Validationf("all fields are required")
	}

	d, err := s.doctors.DoctorByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if d == nil {
		return nil, "", domain.ErrNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrUnauthorized
	}

	tok, err := s.tokens.Issue(d.ID)
	if err != nil {
		return nil, "", err
	}
	return d.Redacted(), tok, nil
}

// ByID returns the redacted doctor, or ErrNotFound.
func (s *DoctorService) ByID(ctx context.Context, id string) (*domain.Doctor, error) {
	d, err := s.doctors.DoctorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d.Redacted(), nil
}

// List returns the public doctor directory, redacted.
func (s *DoctorService) List(ctx context.Context) ([]domain.Doctor, error) {
	ds, err := s.doctors.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}
	for i := range ds {
		ds[i].PasswordHash = ""
	}
	return ds, nil
}
