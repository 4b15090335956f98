package token

import (
	"errors"
	"testing"
	"time"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewService("test-secret")

	raw, err := svc.Issue("doctor-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	id, err := svc.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != "doctor-123" {
		t.Errorf("expected principal id doctor-123, got %q", id)
	}
}

func TestVerifyExpired(t *testing.T) {
	svc := NewService("test-secret")

	// Issue in the past, verify in the present.
	svc.now = func() time.Time { return time.Now().Add(-TTL - time.Hour) }
	raw, err := svc.Issue("patient-9")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Verify(raw); !errors.Is(err, ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}
}

func TestVerifyJustBeforeExpiry(t *testing.T) {
	svc := NewService("test-secret")
	issued := time.Now()
	svc.now = func() time.Time { return issued }

	raw, err := svc.Issue("patient-9")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(TTL - time.Minute) }
	if _, err := svc.Verify(raw); err != nil {
		t.Errorf("token should still be valid just before expiry: %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	svc := NewService("test-secret")

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Verify(raw); !errors.Is(err, ErrMalformed) {
			t.Errorf("Verify(%q): expected ErrMalformed, got %v", raw, err)
		}
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	raw, err := NewService("secret-a").Issue("doc-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewService("secret-b").Verify(raw); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for wrong secret, got %v", err)
	}
}
