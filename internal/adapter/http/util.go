package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"telemed/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"message": msg})
}

// writeDomainError translates service errors to the HTTP error taxonomy.
// Anything unrecognized is an internal error; its detail stays out of the
// response.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err) || domain.IsDuplicate(err):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
	default:
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}
