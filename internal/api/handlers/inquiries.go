package handlers

import (
	"fmt"
	"net/http"

	"github.com/puentehua/centro-admin/internal/api/dto"
	"github.com/puentehua/centro-admin/internal/api/middleware"
	"github.com/puentehua/centro-admin/internal/api/validation"
	"github.com/puentehua/centro-admin/internal/audit"
	"github.com/puentehua/centro-admin/internal/database/models"
)

// CreateInquiry is the public contact form. Everything written to the
// row has been through the sanitizer.
func (h *Handler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req dto.InquiryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	inquiry := models.Inquiry{
		Name:    validation.SanitizeString(req.Name),
		Email:   validation.SanitizeString(req.Email),
		Phone:   validation.SanitizeString(req.Phone),
		Message: validation.SanitizeString(req.Message),
		Locale:  req.Locale,
		Status:  models.InquiryStatusNew,
	}
	if inquiry.Locale == "" {
		inquiry.Locale = "en"
	}

	if err := h.db.WithContext(r.Context()).Create(&inquiry).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.SuccessResponse{Message: "Thank you, we will be in touch"})
}

func (h *Handler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	limit, offset := dto.PaginationParams(r)

	q := h.db.WithContext(r.Context()).Model(&models.Inquiry{})
	if status := r.URL.Query().Get("status"); status != "" && validation.IsValidConsultationStatus(status) {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	var inquiries []models.Inquiry
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&inquiries).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.PaginatedResponse{
		Data:   inquiries,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *Handler) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateInquiryStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var inquiry models.Inquiry
	if err := h.db.WithContext(r.Context()).First(&inquiry, "id = ?", id).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	previous := inquiry.Status
	if err := h.db.WithContext(r.Context()).Model(&inquiry).Update("status", req.Status).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "inquiries",
		Action:    models.AuditActionUpdate,
		RecordID:  inquiry.ID.String(),
		UserID:    actor.ID,
		Changes:   fmt.Sprintf("status %s -> %s", previous, req.Status),
	})

	respondJSON(w, http.StatusOK, &inquiry)
}

func (h *Handler) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var inquiry models.Inquiry
	if err := h.db.WithContext(r.Context()).First(&inquiry, "id = ?", id).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	if err := h.db.WithContext(r.Context()).Delete(&inquiry).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "inquiries",
		Action:    models.AuditActionDelete,
		RecordID:  inquiry.ID.String(),
		UserID:    actor.ID,
		Changes:   "deleted inquiry",
	})

	respondJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Inquiry deleted"})
}
