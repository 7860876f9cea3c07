// Package http provides HTTP handlers for the identity module.
// Handlers translate HTTP requests into commands and format responses.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/RobuxEmperium/robux-site/modules/identity/requestidentity"
	"github.com/RobuxEmperium/robux-site/modules/identity/application/commands"
	"github.com/RobuxEmperium/robux-site/modules/identity/domain"
	"github.com/RobuxEmperium/robux-site/modules/identity/infrastructure/session"
)

// CookieName is the session cookie set on login.
const CookieName = "session"

// Handler handles HTTP requests for the identity module.
type Handler struct {
	registerUser *commands.RegisterUserHandler
	login        *commands.LoginHandler
	sessions     *session.Store
}

// RegisterRoutes registers the identity module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	registerUser *commands.RegisterUserHandler,
	login *commands.LoginHandler,
	sessions *session.Store,
) {
	h := &Handler{
		registerUser: registerUser,
		login:        login,
		sessions:     sessions,
	}

	mux.HandleFunc("POST /api/register", h.handleRegister)
	mux.HandleFunc("POST /api/login", h.handleLogin)
	mux.HandleFunc("POST /api/logout", h.handleLogout)
	mux.HandleFunc("GET /api/me", h.handleMe)
}

// Request/Response DTOs

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handlers

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing")
		return
	}

	cmd := commands.RegisterUserCommand{Email: req.Email, Password: req.Password}
	if _, err := h.registerUser.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	sess, err := h.login.Handle(r.Context(), commands.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	http.SetCookie(w, sessionCookie(sess.Token, sess.ExpiresAt))
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"user": userDTO{ID: sess.UserID, Email: sess.Email, Role: sess.Role.String()},
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(CookieName); err == nil {
		h.sessions.Delete(cookie.Value)
	}
	http.SetCookie(w, sessionCookie("", time.Unix(0, 0)))
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	ident, ok := requestidentity.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user": userDTO{ID: ident.UserID, Email: ident.Email, Role: ident.Role.String()},
	})
}

func sessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Helper functions

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "invalid")
	case errors.Is(err, domain.ErrEmailExists):
		writeError(w, http.StatusBadRequest, "email_exists")
	case errors.Is(err, domain.ErrEmailRequired),
		errors.Is(err, domain.ErrEmailInvalid),
		errors.Is(err, domain.ErrPasswordRequired):
		writeError(w, http.StatusBadRequest, "missing")
	default:
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorResponse{Error: code})
}
