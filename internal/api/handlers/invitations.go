package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/puentehua/centro-admin/internal/api/dto"
	"github.com/puentehua/centro-admin/internal/api/middleware"
	"github.com/puentehua/centro-admin/internal/api/validation"
	"github.com/puentehua/centro-admin/internal/invitations"
)

// CreateInvitation issues an invitation. The invite matrix lives in the
// service; the guard has already established the caller is staff.
func (h *Handler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	profile := middleware.GetProfile(r.Context())
	if profile == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.CreateInvitationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := h.invitations.Create(r.Context(), profile, req.Email, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, invitations.ErrCannotInvite):
			respondError(w, http.StatusForbidden, "You cannot grant this role")
		case errors.Is(err, invitations.ErrEmailTaken):
			respondError(w, http.StatusConflict, "An account with this email already exists")
		case errors.Is(err, invitations.ErrActiveInvitation):
			respondError(w, http.StatusConflict, "An active invitation already exists for this email")
		default:
			h.respondStoreError(w, r, err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewInvitationResponse(inv))
}

// ListInvitations returns invitations newest-first.
func (h *Handler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	limit, offset := dto.PaginationParams(r)

	invs, total, err := h.invitations.List(r.Context(), limit, offset)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	out := make([]dto.InvitationResponse, 0, len(invs))
	for i := range invs {
		out = append(out, dto.NewInvitationResponse(&invs[i]))
	}

	respondJSON(w, http.StatusOK, dto.PaginatedResponse{
		Data:   out,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// GetInvitationByToken is the public lookup behind the accept page.
// Wrong, expired, and consumed tokens are indistinguishable: all 404.
func (h *Handler) GetInvitationByToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if !validation.IsValidToken(token) {
		respondError(w, http.StatusNotFound, "Invitation not found")
		return
	}

	inv, err := h.invitations.GetByToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, invitations.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Invitation not found")
			return
		}
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.PublicInvitationResponse{
		Email:     inv.Email,
		Role:      inv.Role,
		ExpiresAt: inv.ExpiresAt,
	})
}

// AcceptInvitation consumes a token and provisions the account. Public,
// but still behind the CSRF origin check.
func (h *Handler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if !validation.IsValidToken(token) {
		respondError(w, http.StatusNotFound, "Invitation not found")
		return
	}

	var req dto.AcceptInvitationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.invitations.Accept(r.Context(), invitations.AcceptInput{
		Token:    token,
		Password: req.Password,
		FullName: validation.SanitizeString(req.FullName),
	})
	if err != nil {
		switch {
		case errors.Is(err, invitations.ErrNotFound):
			respondError(w, http.StatusNotFound, "Invitation not found")
		case errors.Is(err, invitations.ErrProfileCreation):
			respondError(w, http.StatusConflict, "Account could not be created")
		default:
			h.respondStoreError(w, r, err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, profile)
}

// RevokeInvitation deletes a pending invitation. Accepted invitations
// are past revocation; they come back 404.
func (h *Handler) RevokeInvitation(w http.ResponseWriter, r *http.Request) {
	profile := middleware.GetProfile(r.Context())
	if profile == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := h.invitations.Revoke(r.Context(), profile, id); err != nil {
		if errors.Is(err, invitations.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Invitation not found")
			return
		}
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Invitation revoked"})
}
