package adapthttp

import (
	"net/http"

	"telemed/internal/app"
)

func (s *Server) handleConsultationCreate(w http.ResponseWriter, r *http.Request) {
	var in app.CreateConsultation
	if err := parseJSON(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p := patientFromContext(r.Context())
	c, err := s.consultations.Create(r.Context(), p.ID, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleConsultationsForDoctor(w http.ResponseWriter, r *http.Request) {
	d := doctorFromContext(r.Context())
	list, err := s.consultations.ListForDoctor(r.Context(), d.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleConsultationsForPatient(w http.ResponseWriter, r *http.Request) {
	p := patientFromContext(r.Context())
	list, err := s.consultations.ListForPatient(r.Context(), p.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleConsultationSingle(w http.ResponseWriter, r *http.Request) {
	d := doctorFromContext(r.Context())
	c, err := s.consultations.GetForDoctor(r.Context(), d.ID, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
