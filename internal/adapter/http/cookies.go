package adapthttp

import (
	"net/http"

	"telemed/internal/token"
)

// Role-scoped session cookie names. Two distinct names keep the two
// resolvers independent: a token in the wrong cookie is looked up in the
// wrong-role store and fails there.
const (
	doctorCookie  = "docToken"
	patientCookie = "patientToken"
)

// setSessionCookie issues the role cookie. Production uses Secure with
// SameSite=None for cross-site frontends; development relaxes to Lax so
// plain-HTTP local setups work.
func setSessionCookie(w http.ResponseWriter, name, value string, production bool) {
	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   production,
		SameSite: sameSite,
		MaxAge:   int(token.TTL.Seconds()),
	})
}

func clearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
