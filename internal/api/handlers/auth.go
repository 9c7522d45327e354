package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/puentehua/centro-admin/internal/api/dto"
	"github.com/puentehua/centro-admin/internal/api/middleware"
	"github.com/puentehua/centro-admin/internal/auth"
)

// Login authenticates credentials and issues a session token, both in
// the body and as an http-only cookie for the admin frontend.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.auth.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		// Inactive accounts get the same answer as bad credentials so
		// login probing reveals nothing about account state.
		if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrInactiveUser) {
			respondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.respondStoreError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    resp.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})

	respondJSON(w, http.StatusOK, resp)
}

// Logout clears the session cookie. Tokens are stateless, so this is
// the whole story server-side.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	respondJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Logged out"})
}

// Me returns the caller's own profile, freshly loaded by the guard.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	profile := middleware.GetProfile(r.Context())
	if profile == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
