package handlers

import (
	"net/http"

	"github.com/puentehua/centro-admin/internal/api/dto"
	"github.com/puentehua/centro-admin/internal/api/middleware"
	"github.com/puentehua/centro-admin/internal/api/validation"
	"github.com/puentehua/centro-admin/internal/audit"
	"github.com/puentehua/centro-admin/internal/database/models"
)

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset := dto.PaginationParams(r)

	q := h.db.WithContext(r.Context()).Model(&models.Event{})
	if r.URL.Query().Get("published") == "true" {
		q = q.Where("published = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	var events []models.Event
	if err := q.Order("starts_at DESC").Limit(limit).Offset(offset).Find(&events).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.PaginatedResponse{
		Data:   events,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var event models.Event
	if err := h.db.WithContext(r.Context()).First(&event, "id = ?", id).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, &event)
}

// CreateEvent stores the event. Content is a rich-text document and is
// stored verbatim; the flat fields go through the sanitizer.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())

	var req dto.EventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	event := models.Event{
		Title:    validation.SanitizeString(req.Title),
		Content:  req.Content,
		Location: validation.SanitizeString(req.Location),
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}
	if req.Published != nil {
		event.Published = *req.Published
	}

	if err := h.db.WithContext(r.Context()).Create(&event).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "events",
		Action:    models.AuditActionInsert,
		RecordID:  event.ID.String(),
		UserID:    actor.ID,
		Changes:   "created event " + event.Title,
	})

	respondJSON(w, http.StatusCreated, &event)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var req dto.EventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var event models.Event
	if err := h.db.WithContext(r.Context()).First(&event, "id = ?", id).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	event.Title = validation.SanitizeString(req.Title)
	event.Content = req.Content
	event.Location = validation.SanitizeString(req.Location)
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	if req.Published != nil {
		event.Published = *req.Published
	}

	if err := h.db.WithContext(r.Context()).Save(&event).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "events",
		Action:    models.AuditActionUpdate,
		RecordID:  event.ID.String(),
		UserID:    actor.ID,
		Changes:   "updated event " + event.Title,
	})

	respondJSON(w, http.StatusOK, &event)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var event models.Event
	if err := h.db.WithContext(r.Context()).First(&event, "id = ?", id).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	if err := h.db.WithContext(r.Context()).Delete(&event).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "events",
		Action:    models.AuditActionDelete,
		RecordID:  event.ID.String(),
		UserID:    actor.ID,
		Changes:   "deleted event " + event.Title,
	})

	respondJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Event deleted"})
}
