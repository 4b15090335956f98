package adapthttp

import (
	"net/http"
	"os"
	"path/filepath"

	"telemed/internal/app"
)

func (s *Server) handlePrescriptionUpsert(w http.ResponseWriter, r *http.Request) {
	var in app.WritePrescription
	if err := parseJSON(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d := doctorFromContext(r.Context())
	p, err := s.prescriptions.Upsert(r.Context(), d.ID, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handlePrescriptionGenerate(w http.ResponseWriter, r *http.Request) {
	d := doctorFromContext(r.Context())
	p, err := s.prescriptions.GenerateAndSend(r.Context(), d.ID, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePrescriptionsForDoctor(w http.ResponseWriter, r *http.Request) {
	d := doctorFromContext(r.Context())
	list, err := s.prescriptions.ListForDoctor(r.Context(), d.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handlePrescriptionsForPatient(w http.ResponseWriter, r *http.Request) {
	p := patientFromContext(r.Context())
	list, err := s.prescriptions.ListForPatient(r.Context(), p.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handlePrescriptionSingle(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	p, err := s.prescriptions.GetForPrincipal(r.Context(), principal, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePrescriptionDownload(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	p, err := s.prescriptions.GetForPrincipal(r.Context(), principal, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if p.PDFPath == "" {
		writeMessage(w, http.StatusNotFound, "no pdf generated for this prescription")
		return
	}
	f, err := os.Open(p.PDFPath)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "no pdf generated for this prescription")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filepath.Base(p.PDFPath)+"\"")
	http.ServeContent(w, r, filepath.Base(p.PDFPath), p.UpdatedAt, f)
}
