package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ani232003/IRCTC/internal/identity"
	"github.com/ani232003/IRCTC/internal/middleware"
)

// AuthHandler handles account and session HTTP requests.
type AuthHandler struct {
	provider identity.Provider
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(provider identity.Provider) *AuthHandler {
	return &AuthHandler{provider: provider}
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest is the sign-in form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is returned on successful sign-in.
type SessionResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Register handles POST /api/v1/auth/register
//
// Response codes:
//
//	201  — Account created
//	409  — Email already registered
//	422  — Weak password, mismatched passwords, or missing fields
//	500  — Unexpected error
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}

	user, err := h.provider.SignUp(r.Context(), req.FullName, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrEmailTaken):
			writeJSON(w, http.StatusConflict, map[string]string{
				"error":   "email_taken",
				"message": err.Error(),
			})
		case errors.Is(err, identity.ErrWeakPassword),
			errors.Is(err, identity.ErrPasswordMismatch),
			errors.Is(err, identity.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error":   "invalid_form",
				"message": err.Error(),
			})
		default:
			log.Printf("[handler] register error: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "internal_error",
			})
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/v1/auth/login
//
// Opens a session and returns its bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}

	token, user, err := h.provider.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":   "invalid_credentials",
				"message": err.Error(),
			})
			return
		}
		log.Printf("[handler] login error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal_error",
		})
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{Token: token, User: user})
}

// Logout handles POST /api/v1/auth/logout
//
// Tears down the caller's session. Safe to call without one.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.provider.SignOut(r.Context(), middleware.BearerToken(r)); err != nil {
		log.Printf("[handler] logout error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal_error",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// Me handles GET /api/v1/auth/me
//
// Returns the user behind the bearer token, or 401 without a session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.provider.CurrentUser(r.Context(), middleware.BearerToken(r))
	if err != nil {
		if errors.Is(err, identity.ErrNoSession) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":   "not_signed_in",
				"message": "Sign in to continue.",
			})
			return
		}
		log.Printf("[handler] me error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal_error",
		})
		return
	}
	writeJSON(w, http.StatusOK, user)
}
