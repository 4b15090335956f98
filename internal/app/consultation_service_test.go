package app

import (
	"context"
	"errors"
	"testing"

	"telemed/internal/domain"
)

type mockConsultationRepo struct {
	createFn    func(ctx context.Context, c *domain.Consultation) error
	byIDFn      func(ctx context.Context, id string) (*domain.Consultation, error)
	byDoctorFn  func(ctx context.Context, doctorID string) ([]domain.Consultation, error)
	byPatientFn func(ctx context.Context, patientID string) ([]domain.Consultation, error)
	setStatusFn func(ctx context.Context, id, status string) error
}

func (m *mockConsultationRepo) CreateConsultation(ctx context.Context, c *domain.Consultation) error {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return nil
}

func (m *mockConsultationRepo) ConsultationByID(ctx context.Context, id string) (*domain.Consultation, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockConsultationRepo) ConsultationsByDoctor(ctx context.Context, doctorID string) ([]domain.Consultation, error) {
	if m.byDoctorFn != nil {
		return m.byDoctorFn(ctx, doctorID)
	}
	return nil, nil
}

func (m *mockConsultationRepo) ConsultationsByPatient(ctx context.Context, patientID string) ([]domain.Consultation, error) {
	if m.byPatientFn != nil {
		return m.byPatientFn(ctx, patientID)
	}
	return nil, nil
}

func (m *mockConsultationRepo) SetConsultationStatus(ctx context.Context, id, status string) error {
	if m.setStatusFn != nil {
		return m.setStatusFn(ctx, id, status)
	}
	return nil
}

func knownDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{
		byIDFn: func(ctx context.Context, id string) (*domain.Doctor, error) {
			return &domain.Doctor{ID: id, Name: "Dr. X"}, nil
		},
	}
}

func validIntake() CreateConsultation {
	return CreateConsultation{
		DoctorID:              "d1",
		CurrentIllnessHistory: "persistent cough",
		FamilyMedicalHistory:  domain.FamilyMedicalHistory{Diabetics: domain.NonDiabetic},
		TransactionID:         "txn-1",
	}
}

func TestConsultationService_Create_Success(t *testing.T) {
	var stored *domain.Consultation
	consultations := &mockConsultationRepo{
		createFn: func(ctx context.Context, c *domain.Consultation) error {
			stored = c
			return nil
		},
	}
	svc := NewConsultationService(consultations, knownDoctorRepo())

	c, err := svc.Create(context.Background(), "p1", validIntake())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.Status != domain.ConsultationPending {
		t.Errorf("expected pending status, got %q", c.Status)
	}
	if c.PatientID != "p1" {
		t.Errorf("expected patient id from session, got %q", c.PatientID)
	}
	if stored == nil || stored.ID == "" {
		t.Error("expected consultation stored with a generated id")
	}
}

func TestConsultationService_Create_MissingFields(t *testing.T) {
	svc := NewConsultationService(&mockConsultationRepo{}, knownDoctorRepo())

	in := validIntake()
	in.TransactionID = ""
	_, err := svc.Create(context.Background(), "p1", in)
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestConsultationService_Create_BadDiabetics(t *testing.T) {
	svc := NewConsultationService(&mockConsultationRepo{}, knownDoctorRepo())

	in := validIntake()
	in.FamilyMedicalHistory.Diabetics = "maybe"
	_, err := svc.Create(context.Background(), "p1", in)
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestConsultationService_Create_UnknownDoctor(t *testing.T) {
	svc := NewConsultationService(&mockConsultationRepo{}, &mockDoctorRepo{})

	_, err := svc.Create(context.Background(), "p1", validIntake())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestConsultationService_GetForDoctor_Ownership(t *testing.T) {
	consultations := &mockConsultationRepo{
		byIDFn: func(ctx context.Context, id string) (*domain.Consultation, error) {
			return &domain.Consultation{ID: id, DoctorID: "owner"}, nil
		},
	}
	svc := NewConsultationService(consultations, knownDoctorRepo())

	if _, err := svc.GetForDoctor(context.Background(), "owner", "c1"); err != nil {
		t.Errorf("owner read should succeed, got %v", err)
	}
	if _, err := svc.GetForDoctor(context.Background(), "intruder", "c1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign read must look like not found, got %v", err)
	}
}
