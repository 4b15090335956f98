package app

import (
	"context"

	"github.com/google/uuid"

	"telemed/internal/domain"
)

// ConsultationService encapsulates consultation use cases. Consultations
// are created by patients and read by either party, each scoped to their
// own records.
type ConsultationService struct {
	consultations domain.ConsultationRepository
	doctors       domain.DoctorRepository
}

// NewConsultationService creates a ConsultationService.
func NewConsultationService(consultations domain.ConsultationRepository, doctors domain.DoctorRepository) *ConsultationService {
	return &ConsultationService{consultations: consultations, doctors: doctors}
}

// CreateConsultation is the intake payload submitted by a patient.
type CreateConsultation struct {
	DoctorID              string                      `json:"doctorId"`
	CurrentIllnessHistory string                      `json:"currentIllnessHistory"`
	RecentSurgery         domain.RecentSurgery        `json:"recentSurgery"`
	FamilyMedicalHistory  domain.FamilyMedicalHistory `json:"familyMedicalHistory"`
	TransactionID         string                      `json:"transactionId"`
}

// Create validates the intake and stores a pending consultation for the
// authenticated patient. The patient id comes from the session resolver,
// never from the payload.
func (s *ConsultationService) Create(ctx context.Context, patientID string, in CreateConsultation) (*domain.Consultation, error) {
	if in.DoctorID == "" || in.CurrentIllnessHistory == "" || in.TransactionID == "" {
		return nil, domain.Validationf("all fields are required")
	}
	if in.FamilyMedicalHistory.Diabetics != domain.Diabetic && in.FamilyMedicalHistory.Diabetics != domain.NonDiabetic {
		return nil, domain.Validationf("diabetics must be %q or %q", domain.Diabetic, domain.NonDiabetic)
	}

	doctor, err := s.doctors.DoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, domain.ErrNotFound
	}

	c := &domain.Consultation{
		ID:                    uuid.NewString(),
		PatientID:             patientID,
		DoctorID:              in.DoctorID,
		CurrentIllnessHistory: in.CurrentIllnessHistory,
		RecentSurgery:         in.RecentSurgery,
		FamilyMedicalHistory:  in.FamilyMedicalHistory,
		TransactionID:         in.TransactionID,
		Status:                domain.ConsultationPending,
	}
	if err := s.consultations.CreateConsultation(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListForDoctor returns the doctor's consultations, newest first.
func (s *ConsultationService) ListForDoctor(ctx context.Context, doctorID string) ([]domain.Consultation, error) {
	return s.consultations.ConsultationsByDoctor(ctx, doctorID)
}

// ListForPatient returns the patient's consultations, newest first.
func (s *ConsultationService) ListForPatient(ctx context.Context, patientID string) ([]domain.Consultation, error) {
	return s.consultations.ConsultationsByPatient(ctx, patientID)
}

// GetForDoctor returns a single consultation belonging to the doctor.
// A consultation owned by someone else is indistinguishable from a
// missing one.
func (s *ConsultationService) GetForDoctor(ctx context.Context, doctorID, id string) (*domain.Consultation, error) {
	c, err := s.consultations.ConsultationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.DoctorID != doctorID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}
