package handlers

import (
	"net/http"

	"github.com/puentehua/centro-admin/internal/api/dto"
	"github.com/puentehua/centro-admin/internal/api/middleware"
	"github.com/puentehua/centro-admin/internal/api/validation"
	"github.com/puentehua/centro-admin/internal/audit"
	"github.com/puentehua/centro-admin/internal/database/models"
)

func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	limit, offset := dto.PaginationParams(r)

	q := h.db.WithContext(r.Context()).Model(&models.ClassOffering{})
	if locale := r.URL.Query().Get("locale"); locale != "" && validation.IsValidLocale(locale) {
		q = q.Where("locale = ?", locale)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	var classes []models.ClassOffering
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&classes).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.PaginatedResponse{
		Data:   classes,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *Handler) GetClass(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var class models.ClassOffering
	if err := h.db.WithContext(r.Context()).First(&class, "id = ?", id).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, &class)
}

func (h *Handler) CreateClass(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())

	var req dto.ClassRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	class := models.ClassOffering{
		Title:       validation.SanitizeString(req.Title),
		Description: validation.SanitizeString(req.Description),
		Schedule:    validation.SanitizeString(req.Schedule),
		Locale:      req.Locale,
		Capacity:    req.Capacity,
		PriceCents:  req.PriceCents,
		IsActive:    true,
	}
	if class.Locale == "" {
		class.Locale = "en"
	}
	if req.IsActive != nil {
		class.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(r.Context()).Create(&class).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "classes",
		Action:    models.AuditActionInsert,
		RecordID:  class.ID.String(),
		UserID:    actor.ID,
		Changes:   "created class " + class.Title,
	})

	respondJSON(w, http.StatusCreated, &class)
}

func (h *Handler) UpdateClass(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var req dto.ClassRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var class models.ClassOffering
	if err := h.db.WithContext(r.Context()).First(&class, "id = ?", id).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	class.Title = validation.SanitizeString(req.Title)
	class.Description = validation.SanitizeString(req.Description)
	class.Schedule = validation.SanitizeString(req.Schedule)
	if req.Locale != "" {
		class.Locale = req.Locale
	}
	class.Capacity = req.Capacity
	class.PriceCents = req.PriceCents
	if req.IsActive != nil {
		class.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(r.Context()).Save(&class).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "classes",
		Action:    models.AuditActionUpdate,
		RecordID:  class.ID.String(),
		UserID:    actor.ID,
		Changes:   "updated class " + class.Title,
	})

	respondJSON(w, http.StatusOK, &class)
}

func (h *Handler) DeleteClass(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var class models.ClassOffering
	if err := h.db.WithContext(r.Context()).First(&class, "id = ?", id).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	if err := h.db.WithContext(r.Context()).Delete(&class).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "classes",
		Action:    models.AuditActionDelete,
		RecordID:  class.ID.String(),
		UserID:    actor.ID,
		Changes:   "deleted class " + class.Title,
	})

	respondJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Class deleted"})
}
