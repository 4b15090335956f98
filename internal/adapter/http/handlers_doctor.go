package adapthttp

import (
	"errors"
	"net/http"

	"telemed/internal/app"
	"telemed/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleDoctorSignup(w http.ResponseWriter, r *http.Request) {
	var in app.DoctorSignup
	if err := parseJSON(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d, tok, err := s.doctors.Signup(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	setSessionCookie(w, doctorCookie, tok, s.cfg.Production())
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleDoctorLogin(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := parseJSON(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d, tok, err := s.doctors.Login(r.Context(), in.Email, in.Password)
	if errors.Is(err, domain.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "doctor does not exist")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	setSessionCookie(w, doctorCookie, tok, s.cfg.Production())
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDoctorLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, doctorCookie)
	writeMessage(w, http.StatusOK, "logged out successfully")
}

func (s *Server) handleDoctorList(w http.ResponseWriter, r *http.Request) {
	list, err := s.doctors.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDoctorSingle(w http.ResponseWriter, r *http.Request) {
	d, err := s.doctors.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDoctorMe(w http.ResponseWriter, r *http.Request) {
	d := doctorFromContext(r.Context())
	writeJSON(w, http.StatusOK, d.Redacted())
}
