// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"log/slog"
	"net/http"

	"telemed/internal/app"
	"telemed/internal/config"
	"telemed/internal/token"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	doctors       *app.DoctorService
	patients      *app.PatientService
	consultations *app.ConsultationService
	prescriptions *app.PrescriptionService
	uploads       *app.UploadService
	sso           *app.SSOService
	tokens        *token.Service
	cfg           *config.Config
	log           *slog.Logger
	limiter       *ipLimiter
}

// New creates a Server wired to the given application services. sso may
// be nil, in which case the SSO routes are not registered.
func New(
	doctors *app.DoctorService,
	patients *app.PatientService,
	consultations *app.ConsultationService,
	prescriptions *app.PrescriptionService,
	uploads *app.UploadService,
	sso *app.SSOService,
	tokens *token.Service,
	cfg *config.Config,
	log *slog.Logger,
) *Server {
	return &Server{
		doctors:       doctors,
		patients:      patients,
		consultations: consultations,
		prescriptions: prescriptions,
		uploads:       uploads,
		sso:           sso,
		tokens:        tokens,
		cfg:           cfg,
		log:           log,
		limiter:       newIPLimiter(cfg.AuthRatePerSec, cfg.AuthRateBurst),
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("POST /api/v1/doctor/signup", s.rateLimited(s.handleDoctorSignup))
	mux.HandleFunc("POST /api/v1/doctor/login", s.rateLimited(s.handleDoctorLogin))
	mux.HandleFunc("POST /api/v1/doctor/logout", s.handleDoctorLogout)
	mux.HandleFunc("GET /api/v1/doctor/{$}", s.handleDoctorList)
	mux.HandleFunc("GET /api/v1/doctor/single/{id}", s.handleDoctorSingle)
	mux.HandleFunc("GET /api/v1/doctor/me", s.requireDoctor(s.handleDoctorMe))

	mux.HandleFunc("POST /api/v1/patient/signup", s.rateLimited(s.handlePatientSignup))
	mux.HandleFunc("POST /api/v1/patient/login", s.rateLimited(s.handlePatientLogin))
	mux.HandleFunc("POST /api/v1/patient/logout", s.handlePatientLogout)
	mux.HandleFunc("GET /api/v1/patient/me", s.requirePatient(s.handlePatientMe))

	mux.HandleFunc("POST /api/v1/consultation/{$}", s.requirePatient(s.handleConsultationCreate))
	mux.HandleFunc("GET /api/v1/consultation/doctor", s.requireDoctor(s.handleConsultationsForDoctor))
	mux.HandleFunc("GET /api/v1/consultation/patient", s.requirePatient(s.handleConsultationsForPatient))
	mux.HandleFunc("GET /api/v1/consultation/{id}", s.requireDoctor(s.handleConsultationSingle))

	mux.HandleFunc("POST /api/v1/prescription/{$}", s.requireDoctor(s.handlePrescriptionUpsert))
	mux.HandleFunc("POST /api/v1/prescription/{id}/generate-pdf", s.requireDoctor(s.handlePrescriptionGenerate))
	mux.HandleFunc("GET /api/v1/prescription/doctor", s.requireDoctor(s.handlePrescriptionsForDoctor))
	mux.HandleFunc("GET /api/v1/prescription/patient", s.requirePatient(s.handlePrescriptionsForPatient))
	mux.HandleFunc("GET /api/v1/prescription/{id}", s.requirePrincipal(s.handlePrescriptionSingle))
	mux.HandleFunc("GET /api/v1/prescription/{id}/download", s.requirePrincipal(s.handlePrescriptionDownload))

	mux.HandleFunc("POST /api/v1/upload/doctor-image", s.requireDoctor(s.handleDoctorImageUpload))
	mux.HandleFunc("POST /api/v1/upload/patient-image", s.requirePatient(s.handlePatientImageUpload))

	if s.sso != nil {
		mux.HandleFunc("GET /api/v1/doctor/sso/login", s.handleSSOLogin)
		mux.HandleFunc("GET /api/v1/doctor/sso/callback", s.handleSSOCallback)
	}

	mux.Handle("GET /uploads/profile/",
		http.StripPrefix("/uploads/profile/", http.FileServer(http.Dir(s.cfg.UploadDir))))

	return s.loggingMiddleware(mux)
}
