package memory

import (
	"context"
	"errors"
	"testing"

	"telemed/internal/domain"
)

func TestDuplicateContactsPerRole(t *testing.T) {
	ctx := context.Background()
	db := New()

	if err := db.CreateDoctor(ctx, &domain.Doctor{ID: "d1", Email: "a@example.com", Phone: "111"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// same phone wins over same email
	err := db.CreateDoctor(ctx, &domain.Doctor{ID: "d2", Email: "a@example.com", Phone: "111"})
	var dup *domain.DuplicateError
	if !errors.As(err, &dup) || dup.Field != "phone" {
		t.Errorf("expected phone conflict, got %v", err)
	}

	err = db.CreateDoctor(ctx, &domain.Doctor{ID: "d3", Email: "a@example.com", Phone: "222"})
	if !errors.As(err, &dup) || dup.Field != "email" {
		t.Errorf("expected email conflict, got %v", err)
	}

	// the patient store is independent
	if err := db.CreatePatient(ctx, &domain.Patient{ID: "p1", Email: "a@example.com", Phone: "111"}); err != nil {
		t.Errorf("cross-role create should succeed, got %v", err)
	}
}

func TestEmptyContactsNeverCollide(t *testing.T) {
	ctx := context.Background()
	db := New()

	if err := db.CreateDoctor(ctx, &domain.Doctor{ID: "d1"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := db.CreateDoctor(ctx, &domain.Doctor{ID: "d2"}); err != nil {
		t.Errorf("records without contacts must not collide, got %v", err)
	}

	if err := db.CreatePatient(ctx, &domain.Patient{ID: "p1"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := db.CreatePatient(ctx, &domain.Patient{ID: "p2"}); err != nil {
		t.Errorf("records without contacts must not collide, got %v", err)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	db := New()

	if err := db.CreateDoctor(ctx, &domain.Doctor{ID: "d1", Name: "before"}); err != nil {
		t.Fatal(err)
	}
	d, err := db.DoctorByID(ctx, "d1")
	if err != nil {
		t.Fatal(err)
	}
	d.Name = "after"

	again, _ := db.DoctorByID(ctx, "d1")
	if again.Name != "before" {
		t.Error("mutating a read result must not touch the store")
	}
}

func TestMissingRecordsAreNil(t *testing.T) {
	ctx := context.Background()
	db := New()

	if d, err := db.DoctorByID(ctx, "missing"); err != nil || d != nil {
		t.Errorf("expected nil, nil; got %v, %v", d, err)
	}
	if p, err := db.PrescriptionByConsultation(ctx, "missing"); err != nil || p != nil {
		t.Errorf("expected nil, nil; got %v, %v", p, err)
	}
}

func TestConsultationListsScopedWithSummaries(t *testing.T) {
	ctx := context.Background()
	db := New()

	mustCreate(t, db.CreateDoctor(ctx, &domain.Doctor{ID: "d1", Name: "Dr. A", Specialty: "Cardiology"}))
	mustCreate(t, db.CreateDoctor(ctx, &domain.Doctor{ID: "d2", Name: "Dr. B"}))
	mustCreate(t, db.CreatePatient(ctx, &domain.Patient{ID: "p1", Name: "Pat", Age: 30, Email: "p@example.com", Phone: "1"}))

	mustCreate(t, db.CreateConsultation(ctx, &domain.Consultation{ID: "c1", DoctorID: "d1", PatientID: "p1"}))
	mustCreate(t, db.CreateConsultation(ctx, &domain.Consultation{ID: "c2", DoctorID: "d2", PatientID: "p1"}))

	forD1, err := db.ConsultationsByDoctor(ctx, "d1")
	if err != nil {
		t.Fatal(err)
	}
	if len(forD1) != 1 || forD1[0].ID != "c1" {
		t.Fatalf("expected only c1 for d1, got %v", forD1)
	}
	if forD1[0].Patient == nil || forD1[0].Patient.Name != "Pat" {
		t.Error("expected patient summary attached")
	}

	forP1, err := db.ConsultationsByPatient(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(forP1) != 2 {
		t.Fatalf("expected 2 consultations for p1, got %d", len(forP1))
	}
	// newest first
	if !forP1[0].CreatedAt.After(forP1[1].CreatedAt) {
		t.Error("expected newest-first ordering")
	}
	if forP1[0].Doctor == nil {
		t.Error("expected doctor summary attached")
	}
}

func TestPrescriptionsByPatientHidesDrafts(t *testing.T) {
	ctx := context.Background()
	db := New()

	mustCreate(t, db.CreateDoctor(ctx, &domain.Doctor{ID: "d1", Name: "Dr. A"}))
	mustCreate(t, db.CreatePrescription(ctx, &domain.Prescription{
		ID: "rx1", DoctorID: "d1", PatientID: "p1", Status: domain.PrescriptionDraft,
	}))
	mustCreate(t, db.CreatePrescription(ctx, &domain.Prescription{
		ID: "rx2", DoctorID: "d1", PatientID: "p1", Status: domain.PrescriptionSent,
	}))

	sent, err := db.PrescriptionsByPatient(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(sent) != 1 || sent[0].ID != "rx2" {
		t.Fatalf("expected only the sent prescription, got %v", sent)
	}

	all, err := db.PrescriptionsByDoctor(ctx, "d1")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("doctor sees every status, got %d", len(all))
	}
}

func TestUpdatePrescriptionKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	db := New()

	rx := &domain.Prescription{ID: "rx1", Status: domain.PrescriptionDraft}
	mustCreate(t, db.CreatePrescription(ctx, rx))
	created := rx.CreatedAt

	rx.Status = domain.PrescriptionSent
	if err := db.UpdatePrescription(ctx, rx); err != nil {
		t.Fatal(err)
	}

	got, _ := db.PrescriptionByID(ctx, "rx1")
	if !got.CreatedAt.Equal(created) {
		t.Error("update must not rewrite the creation time")
	}
	if !got.UpdatedAt.After(created) {
		t.Error("update must advance the update time")
	}
	if got.Status != domain.PrescriptionSent {
		t.Errorf("expected sent, got %q", got.Status)
	}
}

func TestSetConsultationStatus(t *testing.T) {
	ctx := context.Background()
	db := New()

	mustCreate(t, db.CreateConsultation(ctx, &domain.Consultation{ID: "c1", Status: domain.ConsultationPending}))
	if err := db.SetConsultationStatus(ctx, "c1", domain.ConsultationCompleted); err != nil {
		t.Fatal(err)
	}
	c, _ := db.ConsultationByID(ctx, "c1")
	if c.Status != domain.ConsultationCompleted {
		t.Errorf("expected completed, got %q", c.Status)
	}
}

func mustCreate(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
