package app

import (
	"context"
	"errors"
	"testing"

	"telemed/internal/domain"
)

type mockPatientRepo struct {
	createFn        func(ctx context.Context, p *domain.Patient) error
	byIDFn          func(ctx context.Context, id string) (*domain.Patient, error)
	byEmailFn       func(ctx context.Context, email string) (*domain.Patient, error)
	byContactFn     func(ctx context.Context, email, phone string) (*domain.Patient, error)
	setProfilePicFn func(ctx context.Context, id, url string) error
}

func (m *mockPatientRepo) CreatePatient(ctx context.Context, p *domain.Patient) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *mockPatientRepo) PatientByID(ctx context.Context, id string) (*domain.Patient, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPatientRepo) PatientByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	if m.byEmailFn != nil {
		return m.byEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockPatientRepo) PatientByContact(ctx context.Context, email, phone string) (*domain.Patient, error) {
	if m.byContactFn != nil {
		return m.byContactFn(ctx, email, phone)
	}
	return nil, nil
}

func (m *mockPatientRepo) SetPatientProfilePic(ctx context.Context, id, url string) error {
	if m.setProfilePicFn != nil {
		return m.setProfilePicFn(ctx, id, url)
	}
	return nil
}

type mockPrescriptionRepo struct {
	createFn         func(ctx context.Context, p *domain.Prescription) error
	updateFn         func(ctx context.Context, p *domain.Prescription) error
	byIDFn           func(ctx context.Context, id string) (*domain.Prescription, error)
	byConsultationFn func(ctx context.Context, consultationID string) (*domain.Prescription, error)
	byDoctorFn       func(ctx context.Context, doctorID string) ([]domain.Prescription, error)
	byPatientFn      func(ctx context.Context, patientID string) ([]domain.Prescription, error)
}

func (m *mockPrescriptionRepo) CreatePrescription(ctx context.Context, p *domain.Prescription) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *mockPrescriptionRepo) UpdatePrescription(ctx context.Context, p *domain.Prescription) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *mockPrescriptionRepo) PrescriptionByID(ctx context.Context, id string) (*domain.Prescription, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPrescriptionRepo) PrescriptionByConsultation(ctx context.Context, consultationID string) (*domain.Prescription, error) {
	if m.byConsultationFn != nil {
		return m.byConsultationFn(ctx, consultationID)
	}
	return nil, nil
}

func (m *mockPrescriptionRepo) PrescriptionsByDoctor(ctx context.Context, doctorID string) ([]domain.Prescription, error) {
	if m.byDoctorFn != nil {
		return m.byDoctorFn(ctx, doctorID)
	}
	return nil, nil
}

func (m *mockPrescriptionRepo) PrescriptionsByPatient(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	if m.byPatientFn != nil {
		return m.byPatientFn(ctx, patientID)
	}
	return nil, nil
}

type stubRenderer struct {
	path string
	err  error
	doc  domain.PrescriptionDocument
}

func (r *stubRenderer) Render(ctx context.Context, doc domain.PrescriptionDocument) (string, error) {
	r.doc = doc
	return r.path, r.err
}

func ownedConsultationRepo(doctorID string) *mockConsultationRepo {
	return &mockConsultationRepo{
		byIDFn: func(ctx context.Context, id string) (*domain.Consultation, error) {
			return &domain.Consultation{ID: id, DoctorID: doctorID, PatientID: "p1"}, nil
		},
	}
}

func TestPrescriptionService_Upsert_CreatesDraft(t *testing.T) {
	var stored *domain.Prescription
	prescriptions := &mockPrescriptionRepo{
		createFn: func(ctx context.Context, p *domain.Prescription) error {
			stored = p
			return nil
		},
	}
	svc := NewPrescriptionService(prescriptions, ownedConsultationRepo("d1"), &mockDoctorRepo{}, &mockPatientRepo{}, &stubRenderer{})

	p, err := svc.Upsert(context.Background(), "d1", WritePrescription{
		ConsultationID: "c1",
		CareToBeTaken:  "rest and fluids",
		Medicines:      "paracetamol",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Status != domain.PrescriptionDraft {
		t.Errorf("expected draft status, got %q", p.Status)
	}
	if p.PatientID != "p1" {
		t.Errorf("expected patient id from consultation, got %q", p.PatientID)
	}
	if stored == nil {
		t.Fatal("expected prescription to be stored")
	}
}

func TestPrescriptionService_Upsert_ForeignConsultation(t *testing.T) {
	svc := NewPrescriptionService(&mockPrescriptionRepo{}, ownedConsultationRepo("other"), &mockDoctorRepo{}, &mockPatientRepo{}, &stubRenderer{})

	_, err := svc.Upsert(context.Background(), "d1", WritePrescription{
		ConsultationID: "c1",
		CareToBeTaken:  "rest",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign consultation must look like not found, got %v", err)
	}
}

func TestPrescriptionService_Upsert_UpdatesExistingToDraft(t *testing.T) {
	updated := false
	prescriptions := &mockPrescriptionRepo{
		byConsultationFn: func(ctx context.Context, consultationID string) (*domain.Prescription, error) {
			return &domain.Prescription{
				ID:             "rx1",
				ConsultationID: consultationID,
				DoctorID:       "d1",
				PatientID:      "p1",
				Status:         domain.PrescriptionSent,
			}, nil
		},
		updateFn: func(ctx context.Context, p *domain.Prescription) error {
			updated = true
			if p.Status != domain.PrescriptionDraft {
				t.Errorf("rewrite must reset status to draft, got %q", p.Status)
			}
			if p.CareToBeTaken != "new advice" {
				t.Errorf("expected updated content, got %q", p.CareToBeTaken)
			}
			return nil
		},
	}
	svc := NewPrescriptionService(prescriptions, ownedConsultationRepo("d1"), &mockDoctorRepo{}, &mockPatientRepo{}, &stubRenderer{})

	p, err := svc.Upsert(context.Background(), "d1", WritePrescription{
		ConsultationID: "c1",
		CareToBeTaken:  "new advice",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !updated {
		t.Error("expected update, not create")
	}
	if p.ID != "rx1" {
		t.Errorf("expected existing prescription id, got %q", p.ID)
	}
}

func TestPrescriptionService_GenerateAndSend(t *testing.T) {
	rx := &domain.Prescription{
		ID:             "rx1",
		ConsultationID: "c1",
		DoctorID:       "d1",
		PatientID:      "p1",
		CareToBeTaken:  "rest",
		Status:         domain.PrescriptionDraft,
	}
	var saved *domain.Prescription
	prescriptions := &mockPrescriptionRepo{
		byIDFn: func(ctx context.Context, id string) (*domain.Prescription, error) {
			cp := *rx
			return &cp, nil
		},
		updateFn: func(ctx context.Context, p *domain.Prescription) error {
			saved = p
			return nil
		},
	}
	completed := ""
	consultations := &mockConsultationRepo{
		setStatusFn: func(ctx context.Context, id, status string) error {
			completed = status
			return nil
		},
	}
	doctors := &mockDoctorRepo{
		byIDFn: func(ctx context.Context, id string) (*domain.Doctor, error) {
			return &domain.Doctor{ID: id, Name: "Dr. X", Specialty: "Cardiology", Experience: 7}, nil
		},
	}
	patients := &mockPatientRepo{
		byIDFn: func(ctx context.Context, id string) (*domain.Patient, error) {
			return &domain.Patient{ID: id, Name: "Pat", Age: 30}, nil
		},
	}
	renderer := &stubRenderer{path: "uploads/prescriptions/prescription-rx1.pdf"}

	svc := NewPrescriptionService(prescriptions, consultations, doctors, patients, renderer)
	p, err := svc.GenerateAndSend(context.Background(), "d1", "rx1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Status != domain.PrescriptionSent {
		t.Errorf("expected sent status, got %q", p.Status)
	}
	if p.PDFPath != renderer.path {
		t.Errorf("expected pdf path %q, got %q", renderer.path, p.PDFPath)
	}
	if saved == nil || saved.Status != domain.PrescriptionSent {
		t.Error("expected sent prescription to be persisted")
	}
	if completed != domain.ConsultationCompleted {
		t.Errorf("expected consultation completed, got %q", completed)
	}
	if renderer.doc.DoctorName != "Dr. X" || renderer.doc.PatientName != "Pat" {
		t.Error("renderer did not receive the party names")
	}
}

func TestPrescriptionService_GenerateAndSend_ForeignPrescription(t *testing.T) {
	prescriptions := &mockPrescriptionRepo{
		byIDFn: func(ctx context.Context, id string) (*domain.Prescription, error) {
			return &domain.Prescription{ID: id, DoctorID: "owner"}, nil
		},
	}
	svc := NewPrescriptionService(prescriptions, &mockConsultationRepo{}, &mockDoctorRepo{}, &mockPatientRepo{}, &stubRenderer{})

	_, err := svc.GenerateAndSend(context.Background(), "intruder", "rx1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign prescription must look like not found, got %v", err)
	}
}

func TestPrescriptionService_GetForPrincipal(t *testing.T) {
	draft := &domain.Prescription{ID: "rx1", DoctorID: "d1", PatientID: "p1", Status: domain.PrescriptionDraft}
	sent := &domain.Prescription{ID: "rx2", DoctorID: "d1", PatientID: "p1", Status: domain.PrescriptionSent}
	prescriptions := &mockPrescriptionRepo{
		byIDFn: func(ctx context.Context, id string) (*domain.Prescription, error) {
			switch id {
			case "rx1":
				cp := *draft
				return &cp, nil
			case "rx2":
				cp := *sent
				return &cp, nil
			}
			return nil, nil
		},
	}
	svc := NewPrescriptionService(prescriptions, &mockConsultationRepo{}, &mockDoctorRepo{}, &mockPatientRepo{}, &stubRenderer{})

	doctor := domain.Principal{ID: "d1", Role: domain.RoleDoctor}
	patient := domain.Principal{ID: "p1", Role: domain.RolePatient}
	stranger := domain.Principal{ID: "p2", Role: domain.RolePatient}

	if _, err := svc.GetForPrincipal(context.Background(), doctor, "rx1"); err != nil {
		t.Errorf("owning doctor reads drafts, got %v", err)
	}
	if _, err := svc.GetForPrincipal(context.Background(), patient, "rx1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("patient must not see drafts, got %v", err)
	}
	if _, err := svc.GetForPrincipal(context.Background(), patient, "rx2"); err != nil {
		t.Errorf("owning patient reads sent prescriptions, got %v", err)
	}
	if _, err := svc.GetForPrincipal(context.Background(), stranger, "rx2"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("stranger must not see the prescription, got %v", err)
	}
}
