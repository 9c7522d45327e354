package handlers

import (
	"fmt"
	"net/http"

	"github.com/puentehua/centro-admin/internal/api/dto"
	"github.com/puentehua/centro-admin/internal/api/middleware"
	"github.com/puentehua/centro-admin/internal/api/validation"
	"github.com/puentehua/centro-admin/internal/audit"
	"github.com/puentehua/centro-admin/internal/database/models"
	"gorm.io/gorm"
)

func (h *Handler) ListExamSessions(w http.ResponseWriter, r *http.Request) {
	limit, offset := dto.PaginationParams(r)

	var total int64
	if err := h.db.WithContext(r.Context()).Model(&models.ExamSession{}).Count(&total).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	var sessions []models.ExamSession
	err := h.db.WithContext(r.Context()).
		Order("exam_date ASC").
		Limit(limit).
		Offset(offset).
		Find(&sessions).Error
	if err != nil {
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

func (h *Handler) GetExamSession(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var session models.ExamSession
	if err := h.db.WithContext(r.Context()).First(&session, "id = ?", id).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, &session)
}

func (h *Handler) CreateExamSession(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())

	var req dto.ExamSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session := models.ExamSession{
		Level:          req.Level,
		ExamDate:       req.ExamDate,
		Location:       validation.SanitizeString(req.Location),
		SeatsTotal:     req.SeatsTotal,
		SeatsAvailable: req.SeatsTotal,
		PriceCents:     req.PriceCents,
	}

	if err := h.db.WithContext(r.Context()).Create(&session).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "exam_sessions",
		Action:    models.AuditActionInsert,
		RecordID:  session.ID.String(),
		UserID:    actor.ID,
		Changes:   fmt.Sprintf("created HSK %d session", session.Level),
	})

	respondJSON(w, http.StatusCreated, &session)
}

// UpdateExamSession edits session metadata. Seat counts are adjusted so
// that already-taken seats are preserved; SeatsAvailable is never set
// directly from input.
func (h *Handler) UpdateExamSession(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var req dto.ExamSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var session models.ExamSession
	if err := h.db.WithContext(r.Context()).First(&session, "id = ?", id).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	taken := session.SeatsTotal - session.SeatsAvailable
	if req.SeatsTotal < taken {
		respondError(w, http.StatusBadRequest, "Seat count cannot drop below registrations already taken")
		return
	}

	session.Level = req.Level
	session.ExamDate = req.ExamDate
	session.Location = validation.SanitizeString(req.Location)
	session.SeatsTotal = req.SeatsTotal
	session.SeatsAvailable = req.SeatsTotal - taken
	session.PriceCents = req.PriceCents

	if err := h.db.WithContext(r.Context()).Save(&session).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "exam_sessions",
		Action:    models.AuditActionUpdate,
		RecordID:  session.ID.String(),
		UserID:    actor.ID,
		Changes:   fmt.Sprintf("updated HSK %d session", session.Level),
	})

	respondJSON(w, http.StatusOK, &session)
}

func (h *Handler) DeleteExamSession(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var session models.ExamSession
	if err := h.db.WithContext(r.Context()).First(&session, "id = ?", id).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	if err := h.db.WithContext(r.Context()).Delete(&session).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "exam_sessions",
		Action:    models.AuditActionDelete,
		RecordID:  session.ID.String(),
		UserID:    actor.ID,
		Changes:   fmt.Sprintf("deleted HSK %d session", session.Level),
	})

	respondJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Exam session deleted"})
}

// RegisterForExam is the public signup. The seat is claimed with a
// conditional decrement so two concurrent registrations can never share
// the last seat; a full session answers 409.
func (h *Handler) RegisterForExam(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var req dto.ExamRegistrationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	registration := models.ExamRegistration{
		SessionID: id,
		FullName:  validation.SanitizeString(req.FullName),
		Email:     validation.SanitizeString(req.Email),
		Phone:     validation.SanitizeString(req.Phone),
		Status:    models.RegistrationStatusRegistered,
	}

	err := h.db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&models.ExamSession{}).
			Where("id = ? AND seats_available > 0", id).
			Update("seats_available", gorm.Expr("seats_available - 1"))
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return errSessionFull
		}
		return tx.Create(&registration).Error
	})
	if err != nil {
		if err == errSessionFull {
			// Distinguish a missing session from a full one.
			var session models.ExamSession
			if lookupErr := h.db.WithContext(r.Context()).First(&session, "id = ?", id).Error; lookupErr != nil {
				h.respondStoreError(w, r, lookupErr)
				return
			}
			respondError(w, http.StatusConflict, "No seats available for this session")
			return
		}
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, &registration)
}

var errSessionFull = fmt.Errorf("no seats available")

func (h *Handler) ListExamRegistrations(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	limit, offset := dto.PaginationParams(r)

	q := h.db.WithContext(r.Context()).Model(&models.ExamRegistration{}).Where("session_id = ?", id)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	var registrations []models.ExamRegistration
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&registrations).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.PaginatedResponse{
		Data:   registrations,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// UpdateExamRegistration moves a registration between statuses.
// Cancelling releases the seat back, capped at the session total.
func (h *Handler) UpdateExamRegistration(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfile(r.Context())

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateRegistrationStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var registration models.ExamRegistration
	if err := h.db.WithContext(r.Context()).First(&registration, "id = ?", id).Error; err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	previous := registration.Status
	if previous == req.Status {
		respondJSON(w, http.StatusOK, &registration)
		return
	}

	err := h.db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&registration).Update("status", req.Status).Error; err != nil {
			return err
		}

		switch {
		case req.Status == models.RegistrationStatusCancelled:
			return tx.Model(&models.ExamSession{}).
				Where("id = ? AND seats_available < seats_total", registration.SessionID).
				Update("seats_available", gorm.Expr("seats_available + 1")).Error
		case previous == models.RegistrationStatusCancelled:
			// Re-activation reclaims a seat; fails if the session filled
			// back up in the meantime.
			claim := tx.Model(&models.ExamSession{}).
				Where("id = ? AND seats_available > 0", registration.SessionID).
				Update("seats_available", gorm.Expr("seats_available - 1"))
			if claim.Error != nil {
				return claim.Error
			}
			if claim.RowsAffected == 0 {
				return errSessionFull
			}
		}
		return nil
	})
	if err != nil {
		if err == errSessionFull {
			respondError(w, http.StatusConflict, "No seats available for this session")
			return
		}
		h.respondStoreError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		TableName: "exam_registrations",
		Action:    models.AuditActionUpdate,
		RecordID:  registration.ID.String(),
		UserID:    actor.ID,
		Changes:   fmt.Sprintf("status %s -> %s", previous, req.Status),
	})

	respondJSON(w, http.StatusOK, &registration)
}
