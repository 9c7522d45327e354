package handlers

import (
	"net/http"

	"github.com/puentehua/centro-admin/internal/api/dto"
	"github.com/puentehua/centro-admin/internal/api/validation"
	"github.com/puentehua/centro-admin/internal/database/models"
)

// ListAuditLogs returns audit entries newest-first, optionally filtered
// by table, action, or acting user. Filter values outside the closed
// sets are ignored rather than erroring.
func (h *Handler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit, offset := dto.PaginationParams(r)

	q := h.db.WithContext(r.Context()).Model(&models.AuditLogEntry{})

	if table := r.URL.Query().Get("table"); table != "" && validation.IsValidAuditTable(table) {
		q = q.Where("table_name = ?", table)
	}
	if action := r.URL.Query().Get("action"); action != "" && validation.IsValidAuditAction(action) {
		q = q.Where("action = ?", action)
	}
	if userID := r.URL.Query().Get("user_id"); userID != "" && validation.IsValidUUID(userID) {
		q = q.Where("user_id = ?", userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	var entries []models.AuditLogEntry
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.PaginatedResponse{
		Data:   entries,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}
