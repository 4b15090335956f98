// Package memory implements the domain repositories in memory for
// development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"telemed/internal/domain"
)

// DB implements every domain repository on in-memory maps.
type DB struct {
	mu            sync.Mutex
	doctors       map[string]*domain.Doctor
	patients      map[string]*domain.Patient
	consultations map[string]*domain.Consultation
	prescriptions map[string]*domain.Prescription
	seq           int64
}

// New creates an empty in-memory database.
func New() *DB {
	return &DB{
		doctors:       make(map[string]*domain.Doctor),
		patients:      make(map[string]*domain.Patient),
		consultations: make(map[string]*domain.Consultation),
		prescriptions: make(map[string]*domain.Prescription),
	}
}

// Ensure interfaces are met.
var _ domain.DoctorRepository = (*DB)(nil)
var _ domain.PatientRepository = (*DB)(nil)
var _ domain.ConsultationRepository = (*DB)(nil)
var _ domain.PrescriptionRepository = (*DB)(nil)

// now produces strictly increasing timestamps so newest-first ordering is
// deterministic even within a single clock tick.
func (db *DB) now() time.Time {
	db.seq++
	return time.Now().Add(time.Duration(db.seq) * time.Microsecond)
}

// --- DoctorRepository ---

// CreateDoctor stores a doctor, enforcing the per-role unique contacts.
func (db *DB) CreateDoctor(ctx context.Context, d *domain.Doctor) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, other := range db.doctors {
		if d.Phone != "" && other.Phone == d.Phone {
			return &domain.DuplicateError{Field: "phone"}
		}
		if d.Email != "" && other.Email == d.Email {
			return &domain.DuplicateError{Field: "email"}
		}
	}

	now := db.now()
	d.CreatedAt = now
	d.UpdatedAt = now
	cp := *d
	db.doctors[d.ID] = &cp
	return nil
}

// DoctorByID returns a doctor by id, or nil.
func (db *DB) DoctorByID(ctx context.Context, id string) (*domain.Doctor, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if d, ok := db.doctors[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

// DoctorByEmail returns a doctor by email, or nil.
func (db *DB) DoctorByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, d := range db.doctors {
		if d.Email == email {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

// DoctorByContact returns the first doctor matching either contact field.
func (db *DB) DoctorByContact(ctx context.Context, email, phone string) (*domain.Doctor, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, d := range db.doctors {
		if d.Email == email || d.Phone == phone {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

// ListDoctors returns every doctor, newest first.
func (db *DB) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Doctor, 0, len(db.doctors))
	for _, d := range db.doctors {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// SetDoctorProfilePic updates the doctor's profile image URL.
func (db *DB) SetDoctorProfilePic(ctx context.Context, id, url string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if d, ok := db.doctors[id]; ok {
		d.ProfilePic = url
		d.UpdatedAt = db.now()
	}
	return nil
}

// --- PatientRepository ---

// CreatePatient stores a patient, enforcing the per-role unique contacts.
func (db *DB) CreatePatient(ctx context.Context, p *domain.Patient) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, other := range db.patients {
		if p.Phone != "" && other.Phone == p.Phone {
			return &domain.DuplicateError{Field: "phone"}
		}
		if p.Email != "" && other.Email == p.Email {
			return &domain.DuplicateError{Field: "email"}
		}
	}

	now := db.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	db.patients[p.ID] = &cp
	return nil
}

// PatientByID returns a patient by id, or nil.
func (db *DB) PatientByID(ctx context.Context, id string) (*domain.Patient, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if p, ok := db.patients[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

// PatientByEmail returns a patient by email, or nil.
func (db *DB) PatientByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, p := range db.patients {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// PatientByContact returns the first patient matching either contact field.
func (db *DB) PatientByContact(ctx context.Context, email, phone string) (*domain.Patient, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, p := range db.patients {
		if p.Email == email || p.Phone == phone {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// SetPatientProfilePic updates the patient's profile image URL.
func (db *DB) SetPatientProfilePic(ctx context.Context, id, url string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if p, ok := db.patients[id]; ok {
		p.ProfilePic = url
		p.UpdatedAt = db.now()
	}
	return nil
}

// --- ConsultationRepository ---

// CreateConsultation stores a consultation.
func (db *DB) CreateConsultation(ctx context.Context, c *domain.Consultation) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	now := db.now()
	c.CreatedAt = now
	c.UpdatedAt = now
	cp := *c
	db.consultations[c.ID] = &cp
	return nil
}

// ConsultationByID returns a consultation by id, or nil.
func (db *DB) ConsultationByID(ctx context.Context, id string) (*domain.Consultation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if c, ok := db.consultations[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

// ConsultationsByDoctor returns a doctor's consultations, newest first,
// with patient summaries attached.
func (db *DB) ConsultationsByDoctor(ctx context.Context, doctorID string) ([]domain.Consultation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.Consultation
	for _, c := range db.consultations {
		if c.DoctorID != doctorID {
			continue
		}
		cp := *c
		cp.Patient = db.patientSummary(c.PatientID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ConsultationsByPatient returns a patient's consultations, newest first,
// with doctor summaries attached.
func (db *DB) ConsultationsByPatient(ctx context.Context, patientID string) ([]domain.Consultation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.Consultation
	for _, c := range db.consultations {
		if c.PatientID != patientID {
			continue
		}
		cp := *c
		cp.Doctor = db.doctorSummary(c.DoctorID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// SetConsultationStatus updates a consultation's status.
func (db *DB) SetConsultationStatus(ctx context.Context, id, status string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if c, ok := db.consultations[id]; ok {
		c.Status = status
		c.UpdatedAt = db.now()
	}
	return nil
}

// --- PrescriptionRepository ---

// CreatePrescription stores a prescription.
func (db *DB) CreatePrescription(ctx context.Context, p *domain.Prescription) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	now := db.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	db.prescriptions[p.ID] = &cp
	return nil
}

// UpdatePrescription persists changes to content, path and status.
func (db *DB) UpdatePrescription(ctx context.Context, p *domain.Prescription) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if existing, ok := db.prescriptions[p.ID]; ok {
		p.UpdatedAt = db.now()
		cp := *p
		cp.CreatedAt = existing.CreatedAt
		db.prescriptions[p.ID] = &cp
	}
	return nil
}

// PrescriptionByID returns a prescription by id, or nil.
func (db *DB) PrescriptionByID(ctx context.Context, id string) (*domain.Prescription, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if p, ok := db.prescriptions[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

// PrescriptionByConsultation returns the prescription for a consultation,
// or nil.
func (db *DB) PrescriptionByConsultation(ctx context.Context, consultationID string) (*domain.Prescription, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, p := range db.prescriptions {
		if p.ConsultationID == consultationID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// PrescriptionsByDoctor returns a doctor's prescriptions, newest first.
func (db *DB) PrescriptionsByDoctor(ctx context.Context, doctorID string) ([]domain.Prescription, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.Prescription
	for _, p := range db.prescriptions {
		if p.DoctorID != doctorID {
			continue
		}
		cp := *p
		cp.Patient = db.patientSummary(p.PatientID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// PrescriptionsByPatient returns a patient's sent prescriptions, newest
// first.
func (db *DB) PrescriptionsByPatient(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.Prescription
	for _, p := range db.prescriptions {
		if p.PatientID != patientID || p.Status != domain.PrescriptionSent {
			continue
		}
		cp := *p
		cp.Doctor = db.doctorSummary(p.DoctorID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Callers hold db.mu.
func (db *DB) doctorSummary(id string) *domain.DoctorSummary {
	d, ok := db.doctors[id]
	if !ok {
		return nil
	}
	return &domain.DoctorSummary{ID: d.ID, Name: d.Name, Specialty: d.Specialty, ProfilePic: d.ProfilePic}
}

func (db *DB) patientSummary(id string) *domain.PatientSummary {
	p, ok := db.patients[id]
	if !ok {
		return nil
	}
	return &domain.PatientSummary{ID: p.ID, Name: p.Name, Age: p.Age, ProfilePic: p.ProfilePic}
}
