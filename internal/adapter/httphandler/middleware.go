package httphandler

import (
	"net/http"

	"github.com/niksmo/storefront/internal/core/port"
)

// SessionCookie carries the opaque session token issued at login.
const SessionCookie = "storefront_session"

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// RequireSession guards the admin surface: requests without a live
// session get a generic 401, never a hint about why.
func RequireSession(sessions port.Sessions, next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(SessionCookie)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized,
				ErrorResponse{Error: "unauthorized"})
			return
		}
		if _, ok := sessions.Get(c.Value); !ok {
			writeJSON(w, http.StatusUnauthorized,
				ErrorResponse{Error: "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}
