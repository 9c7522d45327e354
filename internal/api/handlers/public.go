package handlers

import (
	"net/http"
	"time"

	"github.com/puentehua/centro-admin/internal/api/dto"
	"github.com/puentehua/centro-admin/internal/api/validation"
	"github.com/puentehua/centro-admin/internal/database/models"
)

// Public listings for the site frontend: only active classes and
// published events, no session required.

func (h *Handler) ListPublicClasses(w http.ResponseWriter, r *http.Request) {
	limit, offset := dto.PaginationParams(r)

	q := h.db.WithContext(r.Context()).Model(&models.ClassOffering{}).Where("is_active = ?", true)
	if locale := r.URL.Query().Get("locale"); locale != "" && validation.IsValidLocale(locale) {
		q = q.Where("locale = ?", locale)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	var classes []models.ClassOffering
	if err := q.Order("title ASC").Limit(limit).Offset(offset).Find(&classes).Error; err != nil {
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

func (h *Handler) ListPublicEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset := dto.PaginationParams(r)

	q := h.db.WithContext(r.Context()).Model(&models.Event{}).Where("published = ?", true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	var events []models.Event
	if err := q.Order("starts_at ASC").Limit(limit).Offset(offset).Find(&events).Error; err != nil {
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

// ListPublicExamSessions lists upcoming sittings with open seats so the
// site can render the registration page.
func (h *Handler) ListPublicExamSessions(w http.ResponseWriter, r *http.Request) {
	limit, offset := dto.PaginationParams(r)

	q := h.db.WithContext(r.Context()).Model(&models.ExamSession{}).Where("exam_date > ?", time.Now())

	var total int64
	if err := q.Count(&total).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	var sessions []models.ExamSession
	if err := q.Order("exam_date ASC").Limit(limit).Offset(offset).Find(&sessions).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.PaginatedResponse{
		Data:   sessions,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}
