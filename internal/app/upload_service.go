package app

import (
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"telemed/internal/domain"
)

// ObjectStore is the port to the image storage gateway. Save persists the
// object under name and returns its public URL.
type ObjectStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

var allowedImageExt = map[string]bool{
	".jpg": true,
	".svg": true,
	".png": true,
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// UploadService stores profile images and records their URL on the
// owning principal.
type UploadService struct {
	store    ObjectStore
	doctors  domain.DoctorRepository
	patients domain.PatientRepository
}

// NewUploadService creates an UploadService.
func NewUploadService(store ObjectStore, doctors domain.DoctorRepository, patients domain.PatientRepository) *UploadService {
	return &UploadService{store: store, doctors: doctors, patients: patients}
}

// DoctorImage stores a profile image for the doctor and returns its URL.
func (s *UploadService) DoctorImage(ctx context.Context, doctorID, filename string, r io.Reader) (string, error) {
	name, err := storedName(filename)
	if err != nil {
		return "", err
	}
	url, err := s.store.Save(ctx, "doctor/"+name, r)
	if err != nil {
		return "", err
	}
	if err := s.doctors.SetDoctorProfilePic(ctx, doctorID, url); err != nil {
		return "", err
	}
	return url, nil
}

// PatientImage stores a profile image for the patient and returns its URL.
func (s *UploadService) PatientImage(ctx context.Context, patientID, filename string, r io.Reader) (string, error) {
	name, err := storedName(filename)
	if err != nil {
		return "", err
	}
	url, err := s.store.Save(ctx, "patient/"+name, r)
	if err != nil {
		return "", err
	}
	if err := s.patients.SetPatientProfilePic(ctx, patientID, url); err != nil {
		return "", err
	}
	return url, nil
}

// storedName validates the extension and derives a collision-free object
// name from the uploaded filename.
func storedName(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExt[ext] {
		return "", domain.Validationf("only jpg, svg and png files are allowed")
	}

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = unsafeNameChars.ReplaceAllString(base, "")
	base = strings.Join(strings.Fields(base), "-")
	if base == "" {
		base = "image"
	}
	return base + "-" + uuid.NewString() + ext, nil
}
