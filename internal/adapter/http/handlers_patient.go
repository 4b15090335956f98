package adapthttp

import (
	"errors"
	"net/http"

	"telemed/internal/app"
	"telemed/internal/domain"
)

func (s *Server) handlePatientSignup(w http.ResponseWriter, r *http.Request) {
	var in app.PatientSignup
	if err := parseJSON(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, tok, err := s.patients.Signup(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	setSessionCookie(w, patientCookie, tok, s.cfg.Production())
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handlePatientLogin(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := parseJSON(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, tok, err := s.patients.Login(r.Context(), in.Email, in.Password)
	if errors.Is(err, domain.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "patient does not exist")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	setSessionCookie(w, patientCookie, tok, s.cfg.Production())
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePatientLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, patientCookie)
	writeMessage(w, http.StatusOK, "logged out successfully")
}

func (s *Server) handlePatientMe(w http.ResponseWriter, r *http.Request) {
	p := patientFromContext(r.Context())
	writeJSON(w, http.StatusOK, p.Redacted())
}
