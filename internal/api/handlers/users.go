package handlers

import (
	"fmt"
	"net/http"

	"github.com/puentehua/centro-admin/internal/api/dto"
	"github.com/puentehua/centro-admin/internal/api/middleware"
	"github.com/puentehua/centro-admin/internal/api/validation"
	"github.com/puentehua/centro-admin/internal/audit"
	"github.com/puentehua/centro-admin/internal/database/models"
	"github.com/puentehua/centro-admin/internal/rbac"
)

// ListUsers returns staff accounts newest-first.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := dto.PaginationParams(r)

	var total int64
	if err := h.db.WithContext(r.Context()).Model(&models.Profile{}).Count(&total).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	var users []models.Profile
	err := h.db.WithContext(r.Context()).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.PaginatedResponse{
		Data:   users,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// UpdateSelf edits the caller's own profile. It only ever touches the
// caller's row; the id comes from the session, not the URL.
func (h *Handler) UpdateSelf(w http.ResponseWriter, r *http.Request) {
	profile := middleware.GetProfile(r.Context())
	if profile == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.UpdateSelfRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	update := h.db.WithContext(r.Context()).
		Model(&models.Profile{}).
		Where("id = ?", profile.ID).
		Update("full_name", validation.SanitizeString(req.FullName))
	if update.Error != nil {
		h.respondStoreError(w, r, update.Error)
		return
	}

	var updated models.Profile
	if err := h.db.WithContext(r.Context()).First(&updated, "id = ?", profile.ID).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, &updated)
}

// UpdateUser changes another account's role or activation. The actor
// must outrank the target's current role, and a role change must also
// stay within the actor's grantable range.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())
	if actor == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if id == actor.ID {
		respondError(w, http.StatusBadRequest, "You cannot change your own role or status")
		return
	}

	var target models.Profile
	if err := h.db.WithContext(r.Context()).First(&target, "id = ?", id).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	if !rbac.CanManageRole(rbac.Role(actor.Role), rbac.Role(target.Role)) {
		respondError(w, http.StatusForbidden, "You cannot manage this account")
		return
	}
	if req.Role != nil && !rbac.CanManageRole(rbac.Role(actor.Role), rbac.Role(*req.Role)) {
		respondError(w, http.StatusForbidden, "You cannot grant this role")
		return
	}

	updates := map[string]interface{}{}
	changes := ""
	if req.Role != nil {
		updates["role"] = *req.Role
		changes += fmt.Sprintf("role %s -> %s; ", target.Role, *req.Role)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
		changes += fmt.Sprintf("is_active %t -> %t; ", target.IsActive, *req.IsActive)
	}

	if err := h.db.WithContext(r.Context()).Model(&target).Updates(updates).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "profiles",
		Action:    models.AuditActionUpdate,
		RecordID:  target.ID.String(),
		UserID:    actor.ID,
		Changes:   changes,
	})

	respondJSON(w, http.StatusOK, &target)
}

// DeleteUser removes an account. Owner-only by route guard; deleting
// yourself is a business-rule violation, not a permission failure.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())
	if actor == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if id == actor.ID {
		respondError(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	var target models.Profile
	if err := h.db.WithContext(r.Context()).First(&target, "id = ?", id).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	if !rbac.CanManageRole(rbac.Role(actor.Role), rbac.Role(target.Role)) {
		respondError(w, http.StatusForbidden, "You cannot manage this account")
		return
	}

	if err := h.db.WithContext(r.Context()).Delete(&target).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "profiles",
		Action:    models.AuditActionDelete,
		RecordID:  target.ID.String(),
		UserID:    actor.ID,
		Changes:   fmt.Sprintf("deleted account %s (%s)", target.Email, target.Role),
	})

	respondJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Account deleted"})
}
