package handlers

import (
	"net/http"

	"github.com/puentehua/centro-admin/internal/api/dto"
	"github.com/puentehua/centro-admin/internal/api/middleware"
	"github.com/puentehua/centro-admin/internal/api/validation"
	"github.com/puentehua/centro-admin/internal/audit"
	"github.com/puentehua/centro-admin/internal/database/models"
)

func (h *Handler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	limit, offset := dto.PaginationParams(r)

	var total int64
	if err := h.db.WithContext(r.Context()).Model(&models.TeamMember{}).Count(&total).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	var members []models.TeamMember
	err := h.db.WithContext(r.Context()).
		Order("display_order ASC, created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&members).Error
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.PaginatedResponse{
		Data:   members,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *Handler) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())

	var req dto.TeamMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	member := models.TeamMember{
		Name:         validation.SanitizeString(req.Name),
		Title:        validation.SanitizeString(req.Title),
		Bio:          validation.SanitizeString(req.Bio),
		PhotoURL:     validation.SanitizeString(req.PhotoURL),
		DisplayOrder: req.DisplayOrder,
	}

	if err := h.db.WithContext(r.Context()).Create(&member).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "team_members",
		Action:    models.AuditActionInsert,
		RecordID:  member.ID.String(),
		UserID:    actor.ID,
		Changes:   "created team member " + member.Name,
	})

	respondJSON(w, http.StatusCreated, &member)
}

func (h *Handler) UpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var req dto.TeamMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var member models.TeamMember
	if err := h.db.WithContext(r.Context()).First(&member, "id = ?", id).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	member.Name = validation.SanitizeString(req.Name)
	member.Title = validation.SanitizeString(req.Title)
	member.Bio = validation.SanitizeString(req.Bio)
	member.PhotoURL = validation.SanitizeString(req.PhotoURL)
	member.DisplayOrder = req.DisplayOrder

	if err := h.db.WithContext(r.Context()).Save(&member).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "team_members",
		Action:    models.AuditActionUpdate,
		RecordID:  member.ID.String(),
		UserID:    actor.ID,
		Changes:   "updated team member " + member.Name,
	})

	respondJSON(w, http.StatusOK, &member)
}

func (h *Handler) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var member models.TeamMember
	if err := h.db.WithContext(r.Context()).First(&member, "id = ?", id).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	if err := h.db.WithContext(r.Context()).Delete(&member).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "team_members",
		Action:    models.AuditActionDelete,
		RecordID:  member.ID.String(),
		UserID:    actor.ID,
		Changes:   "deleted team member " + member.Name,
	})

	respondJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Team member deleted"})
}
