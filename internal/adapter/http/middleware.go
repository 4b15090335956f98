package adapthttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"telemed/internal/domain"
)

type contextKey string

const (
	doctorContextKey    contextKey = "doctor"
	patientContextKey   contextKey = "patient"
	principalContextKey contextKey = "principal"
)

// resolveDoctor walks the session states for the doctor role: extract the
// docToken cookie, verify it, load the doctor from the doctor store. Any
// failure rejects the request; the loaded record is already redacted.
func (s *Server) resolveDoctor(r *http.Request) (*domain.Doctor, error) {
	cookie, err := r.Cookie(doctorCookie)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	id, err := s.tokens.Verify(cookie.Value)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	// Only the doctor store is consulted: a patient token replayed here
	// dies on this lookup even though the signing secret is shared.
	d, err := s.doctors.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return d, nil
}

// resolvePatient mirrors resolveDoctor against the patient cookie and store.
func (s *Server) resolvePatient(r *http.Request) (*domain.Patient, error) {
	cookie, err := r.Cookie(patientCookie)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	id, err := s.tokens.Verify(cookie.Value)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	p, err := s.patients.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return p, nil
}

// requireDoctor gates a handler behind the doctor session resolver.
func (s *Server) requireDoctor(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := s.resolveDoctor(r)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				writeMessage(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "internal server error")
			return
		}
		ctx := context.WithValue(r.Context(), doctorContextKey, d)
		ctx = context.WithValue(ctx, principalContextKey, d.Principal())
		next(w, r.WithContext(ctx))
	}
}

// requirePatient gates a handler behind the patient session resolver.
func (s *Server) requirePatient(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.resolvePatient(r)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				writeMessage(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "internal server error")
			return
		}
		ctx := context.WithValue(r.Context(), patientContextKey, p)
		ctx = context.WithValue(ctx, principalContextKey, p.Principal())
		next(w, r.WithContext(ctx))
	}
}

// requirePrincipal accepts a session from either role, doctor first. It
// composes the two role resolvers rather than merging their stores; the
// handler still decides per role what the principal may see.
func (s *Server) requirePrincipal(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d, err := s.resolveDoctor(r); err == nil {
			ctx := context.WithValue(r.Context(), doctorContextKey, d)
			ctx = context.WithValue(ctx, principalContextKey, d.Principal())
			next(w, r.WithContext(ctx))
			return
		}
		if p, err := s.resolvePatient(r); err == nil {
			ctx := context.WithValue(r.Context(), patientContextKey, p)
			ctx = context.WithValue(ctx, principalContextKey, p.Principal())
			next(w, r.WithContext(ctx))
			return
		}
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
	}
}

func doctorFromContext(ctx context.Context) *domain.Doctor {
	d, _ := ctx.Value(doctorContextKey).(*domain.Doctor)
	return d
}

func patientFromContext(ctx context.Context) *domain.Patient {
	p, _ := ctx.Value(patientContextKey).(*domain.Patient)
	return p
}

func principalFromContext(ctx context.Context) domain.Principal {
	p, _ := ctx.Value(principalContextKey).(domain.Principal)
	return p
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware records one line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
