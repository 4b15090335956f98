package adapthttp

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
)

const stateCookie = "oauth_state"

func (s *Server) handleSSOLogin(w http.ResponseWriter, r *http.Request) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}
	state := base64.RawURLEncoding.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   s.cfg.Production(),
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, s.sso.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleSSOCallback(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(stateCookie)
	if err != nil || c.Value == "" || c.Value != r.URL.Query().Get("state") {
		writeMessage(w, http.StatusBadRequest, "state mismatch")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	email, err := s.sso.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	_, tok, err := s.sso.LoginByEmail(r.Context(), email)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	setSessionCookie(w, doctorCookie, tok, s.cfg.Production())
	http.Redirect(w, r, "/", http.StatusFound)
}
