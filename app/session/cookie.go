// Package session moves the signed token to and from the client via
// the "token" cookie.
package session

import (
	"net/http"
	"time"
)

const CookieName = "token"

// Config fixes the security attributes of the session cookie.
type Config struct {
	// Secure is set in production only; local HTTP would otherwise
	// never deliver the cookie.
	Secure bool
	MaxAge time.Duration
}

func Write(w http.ResponseWriter, token string, cfg Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Clear expires the cookie. Clearing an absent cookie is not an error.
func Clear(w http.ResponseWriter, cfg Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
