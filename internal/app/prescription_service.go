package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"telemed/internal/domain"
)

// Renderer is the port to the PDF gateway. Render writes the document
// and returns the stored path.
type Renderer interface {
	Render(ctx context.Context, doc domain.PrescriptionDocument) (string, error)
}

// PrescriptionService encapsulates prescription use cases: draft upsert,
// PDF generation and role-scoped reads. Every doctor-side operation
// verifies that the targeted consultation or prescription belongs to the
// authenticated doctor.
type PrescriptionService struct {
	prescriptions domain.PrescriptionRepository
	consultations domain.ConsultationRepository
	doctors       domain.DoctorRepository
	patients      domain.PatientRepository
	renderer      Renderer
}

// NewPrescriptionService creates a PrescriptionService.
func NewPrescriptionService(
	prescriptions domain.PrescriptionRepository,
	consultations domain.ConsultationRepository,
	doctors domain.DoctorRepository,
	patients domain.PatientRepository,
	renderer Renderer,
) *PrescriptionService {
	return &PrescriptionService{
		prescriptions: prescriptions,
		consultations: consultations,
		doctors:       doctors,
		patients:      patients,
		renderer:      renderer,
	}
}

// WritePrescription is the payload for creating or updating a draft.
type WritePrescription struct {
	ConsultationID string `json:"consultationId"`
	CareToBeTaken  string `json:"careToBeTaken"`
	Medicines      string `json:"medicines"`
}

// Upsert creates the prescription for a consultation or updates the
// existing one, resetting it to draft. The consultation must belong to
// the authenticated doctor; anything else reads as not found.
func (s *PrescriptionService) Upsert(ctx context.Context, doctorID string, in WritePrescription) (*domain.Prescription, error) {
	if in.ConsultationID == "" || in.CareToBeTaken == "" {
		return nil, domain.Validationf("consultationId and careToBeTaken are required")
	}

	c, err := s.consultations.ConsultationByID(ctx, in.ConsultationID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.DoctorID != doctorID {
		return nil, domain.ErrNotFound
	}

	p, err := s.prescriptions.PrescriptionByConsultation(ctx, in.ConsultationID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		p.CareToBeTaken = in.CareToBeTaken
		p.Medicines = in.Medicines
		p.Status = domain.PrescriptionDraft
		if err := s.prescriptions.UpdatePrescription(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}

	p = &domain.Prescription{
		ID:             uuid.NewString(),
		ConsultationID: in.ConsultationID,
		DoctorID:       doctorID,
		PatientID:      c.PatientID,
		CareToBeTaken:  in.CareToBeTaken,
		Medicines:      in.Medicines,
		Status:         domain.PrescriptionDraft,
	}
	if err := s.prescriptions.CreatePrescription(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GenerateAndSend renders the prescription PDF, marks the prescription
// sent and the consultation completed. Requires ownership.
func (s *PrescriptionService) GenerateAndSend(ctx context.Context, doctorID, prescriptionID string) (*domain.Prescription, error) {
	p, err := s.prescriptions.PrescriptionByID(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.DoctorID != doctorID {
		return nil, domain.ErrNotFound
	}

	doctor, err := s.doctors.DoctorByID(ctx, p.DoctorID)
	if err != nil {
		return nil, err
	}
	patient, err := s.patients.PatientByID(ctx, p.PatientID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || patient == nil {
		return nil, domain.ErrNotFound
	}

	path, err := s.renderer.Render(ctx, domain.PrescriptionDocument{
		PrescriptionID:   p.ID,
		DoctorName:       doctor.Name,
		DoctorSpecialty:  doctor.Specialty,
		DoctorExperience: doctor.Experience,
		PatientName:      patient.Name,
		PatientAge:       patient.Age,
		CareToBeTaken:    p.CareToBeTaken,
		Medicines:        p.Medicines,
		Date:             time.Now(),
	})
	if err != nil {
		return nil, err
	}

	p.PDFPath = path
	p.Status = domain.PrescriptionSent
	if err := s.prescriptions.UpdatePrescription(ctx, p); err != nil {
		return nil, err
	}
	if err := s.consultations.SetConsultationStatus(ctx, p.ConsultationID, domain.ConsultationCompleted); err != nil {
		return nil, err
	}
	return p, nil
}

// ListForDoctor returns the doctor's prescriptions, any status.
func (s *PrescriptionService) ListForDoctor(ctx context.Context, doctorID string) ([]domain.Prescription, error) {
	return s.prescriptions.PrescriptionsByDoctor(ctx, doctorID)
}

// ListForPatient returns the patient's sent prescriptions; drafts stay
// invisible until the doctor sends them.
func (s *PrescriptionService) ListForPatient(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	return s.prescriptions.PrescriptionsByPatient(ctx, patientID)
}

// GetForPrincipal returns a single prescription if the principal may see
// it: the owning doctor always, the owning patient once sent. Anything
// else reads as not found rather than leaking existence.
func (s *PrescriptionService) GetForPrincipal(ctx context.Context, principal domain.Principal, id string) (*domain.Prescription, error) {
	p, err := s.prescriptions.PrescriptionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	switch principal.Role {
	case domain.RoleDoctor:
		if p.DoctorID == principal.ID {
			return p, nil
		}
	case domain.RolePatient:
		if p.PatientID == principal.ID && p.Status == domain.PrescriptionSent {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}
