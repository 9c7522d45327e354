// Package handlers implements the HTTP API. Every handler follows the
// same shape: decode and validate, sanitize flat strings, call the
// store or a service, respond with a sanitized error or the entity.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/puentehua/centro-admin/internal/api/dto"
	"github.com/puentehua/centro-admin/internal/api/validation"
	"github.com/puentehua/centro-admin/internal/audit"
	"github.com/puentehua/centro-admin/internal/auth"
	"github.com/puentehua/centro-admin/internal/invitations"
	"gorm.io/gorm"
)

type Handler struct {
	db          *gorm.DB
	logger      *slog.Logger
	audit       *audit.Writer
	auth        auth.IdentityProvider
	invitations *invitations.Service
}

func New(db *gorm.DB, logger *slog.Logger, auditWriter *audit.Writer, authService auth.IdentityProvider, invitationService *invitations.Service) *Handler {
	return &Handler{
		db:          db,
		logger:      logger,
		audit:       auditWriter,
		auth:        authService,
		invitations: invitationService,
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, dto.ErrorResponse{Error: message})
}

// respondStoreError logs the raw failure and sends the client only the
// sanitized category message.
func (h *Handler) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("store operation failed",
		"path", r.URL.Path,
		"method", r.Method,
		"error", err,
	)

	sanitized := validation.SanitizeStoreError(err)
	status := http.StatusInternalServerError
	switch sanitized.Category {
	case validation.ErrCategoryNotFound:
		status = http.StatusNotFound
	case validation.ErrCategoryDuplicate:
		status = http.StatusConflict
	case validation.ErrCategoryReference, validation.ErrCategoryConstraint:
		status = http.StatusBadRequest
	case validation.ErrCategoryPermission:
		status = http.StatusForbidden
	}
	respondError(w, status, sanitized.Message)
}

// decodeJSON reads the request body into v. Unknown fields are
// rejected; an oversized body maps to 413 via the MaxBytesReader set
// upstream. On failure the response is already written.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// urlID parses the {id} route parameter. On failure the response is
// already written.
func urlID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if !validation.IsValidUUID(raw) {
		respondError(w, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}
