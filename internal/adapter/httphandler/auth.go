package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

type AuthHandler struct {
	gate     port.Authenticator
	sessions port.Sessions
}

func RegisterAuth(
	mux *http.ServeMux, gate port.Authenticator, sessions port.Sessions,
) {
	h := AuthHandler{gate, sessions}
	mux.HandleFunc("POST /v1/auth/login", h.Login)
	mux.Handle("POST /v1/auth/logout",
		RequireSession(sessions, http.HandlerFunc(h.Logout)))
}

func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.Login"
	log := slog.With("op", op)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest,
			ErrorResponse{Error: "invalid JSON data"})
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	s, err := h.gate.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		// unknown user and wrong password answer identically
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized,
				ErrorResponse{Error: "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusUnauthorized,
			ErrorResponse{Error: "Authentication failed"})
		log.Error("authentication error", "err", err)
		return
	}

	token, _ := h.sessions.Create(s.Username)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		User:    User{Username: s.Username},
	})
	log.Info("logged in", "username", s.Username)
}

func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.Logout"
	log := slog.With("op", op)

	c, err := r.Cookie(SessionCookie)
	if err == nil {
		h.sessions.Destroy(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, StatusResponse{
		Success: true,
		Message: "Logged out",
	})
	log.Info("logged out")
}
