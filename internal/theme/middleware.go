package theme

import (
	"net/http"
	"time"
)

const (
	// CookieName holds the mode a visitor picked with the toggle.
	CookieName = "theme"

	// HintHeader is the client hint browsers send with their preferred
	// scheme once the server has asked for it through Accept-CH.
	HintHeader = "Sec-CH-Prefers-Color-Scheme"

	cookieMaxAge = 365 * 24 * time.Hour
)

// FromRequest resolves the mode for r: the theme cookie, then the colour
// scheme client hint, then Light.
func FromRequest(r *http.Request) Mode {
	if c, err := r.Cookie(CookieName); err == nil {
		if m, ok := ParseMode(c.Value); ok {
			return m
		}
	}
	if m, ok := ParseMode(r.Header.Get(HintHeader)); ok {
		return m
	}
	return Light
}

// Middleware stores the resolved mode in the request context and asks the
// browser to send its colour scheme preference on later requests.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Accept-CH", HintHeader)
		h.Add("Vary", HintHeader)
		h.Add("Vary", "Cookie")

		ctx := NewContext(r.Context(), FromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireResolved answers 204 No Content when no mode was resolved for the
// request, so a page is never rendered with the wrong scheme.
func RequireResolved(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SetCookie remembers m for the visitor.
func SetCookie(w http.ResponseWriter, m Mode) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    m.String(),
		Path:     "/",
		MaxAge:   int(cookieMaxAge / time.Second),
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}
