package web

import (
	"context"
	"net/http"
	"time"

	"github.com/ericfisherdev/hotelhub/internal/domain/model"
)

const sessionCookieName = "hotelhub_session"

type sessionContextKey struct{}

func withSession(ctx context.Context, s model.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// sessionFrom returns the session placed in ctx by requireSession.
func sessionFrom(ctx context.Context) (model.Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(model.Session)
	return s, ok
}

// sessionID returns the opaque id from the session cookie, or "".
func sessionID(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// requireSession gates a handler on a usable session. Without one the cookie
// is cleared and the request redirected to /login with no error text.
func (h *Handler) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := h.sessions.Resolve(r.Context(), sessionID(r))
		if err != nil {
			h.redirectToLogin(w, r)
			return
		}
		next(w, r.WithContext(withSession(r.Context(), session)))
	}
}

func (h *Handler) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	if sessionID(r) != "" {
		h.clearSessionCookie(w)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, s model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})
}
