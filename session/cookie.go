package session

import (
	"net/http"
	"time"
)

const CookieName = "bunshack_session"

// CookieOptions controls how the session cookie is written.
type CookieOptions struct {
	Secure bool
}

// SetCookie writes token as an HttpOnly cookie. A persistent cookie lives until
// expires; otherwise it ends with the browser session.
func SetCookie(w http.ResponseWriter, opts CookieOptions, token string, expires time.Time, persistent bool) {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if persistent {
		c.Expires = expires
		c.MaxAge = int(time.Until(expires).Seconds())
	}
	http.SetCookie(w, c)
}

func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
