package config

import (
	"errors"
	"testing"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ADDR", "")
	t.Setenv("APP_ENV", "")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", c.Addr)
	}
	if c.Production() {
		t.Error("default env should not be production")
	}
	if c.OIDC.Enabled() {
		t.Error("OIDC should be disabled without an issuer")
	}
	if c.AuthRateBurst != 10 {
		t.Errorf("expected default burst 10, got %d", c.AuthRateBurst)
	}
}

func TestLoadProduction(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !c.Production() {
		t.Error("expected production mode")
	}
}
