package app

import (
	"context"
	"errors"
	"testing"

	"telemed/internal/domain"
)

func TestPatientService_ByID(t *testing.T) {
	repo := &mockPatientRepo{
		byIDFn: func(ctx context.Context, id string) (*domain.Patient, error) {
			return &domain.Patient{ID: id, Name: "Pat", PasswordHash: "hash"}, nil
		},
	}
	svc := NewPatientService(repo, testTokens())

	p, err := svc.ByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Name != "Pat" {
		t.Errorf("unexpected name %q", p.Name)
	}
	if p.PasswordHash != "" {
		t.Error("returned patient must not carry the password hash")
	}
}

func TestPatientService_ByID_NotFound(t *testing.T) {
	svc := NewPatientService(&mockPatientRepo{}, testTokens())

	_, err := svc.ByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
