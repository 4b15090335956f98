package app

import (
	"context"
	"errors"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"telemed/internal/config"
	"telemed/internal/domain"
	"telemed/internal/token"
)

// SSOService implements the optional OIDC login path for doctors. The
// verified id_token email must match an existing doctor account; SSO
// never provisions accounts, since a doctor record cannot be created
// without specialty, experience and fee.
type SSOService struct {
	provider *oidc.Provider
	oauth    oauth2.Config
	doctors  domain.DoctorRepository
	tokens   *token.Service
}

// NewSSOService discovers the OIDC provider. Call only when cfg.Enabled().
func NewSSOService(ctx context.Context, cfg config.OIDC, doctors domain.DoctorRepository, tokens *token.Service) (*SSOService, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, err
	}
	return &SSOService{
		provider: provider,
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
		doctors: doctors,
		tokens:  tokens,
	}, nil
}

// AuthCodeURL returns the provider redirect URL for the given state.
func (s *SSOService) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// Exchange trades the authorization code for a verified email claim.
func (s *SSOService) Exchange(ctx context.Context, code string) (string, error) {
	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", err
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok {
		return "", errors.New("no id_token in token response")
	}

	idToken, err := s.provider.Verifier(&oidc.Config{ClientID: s.oauth.ClientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return "", err
	}

	var claims struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return "", err
	}
	if claims.Email == "" {
		return "", errors.New("id_token carries no email claim")
	}
	return claims.Email, nil
}

// LoginByEmail issues a session token for the existing doctor with the
// given verified email, or ErrNotFound.
func (s *SSOService) LoginByEmail(ctx context.Context, email string) (*domain.Doctor, string, error) {
	d, err := s.doctors.DoctorByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if d == nil {
		return nil, "", domain.ErrNotFound
	}

	tok, err := s.tokens.Issue(d.ID)
	if err != nil {
		return nil, "", err
	}
	return d.Redacted(), tok, nil
}
