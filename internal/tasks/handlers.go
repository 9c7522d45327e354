package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/puentehua/centro-admin/internal/database/models"
	"github.com/puentehua/centro-admin/internal/mailer"
	"gorm.io/gorm"
)

// retentionAfterExpiry keeps dead invitations queryable for a while
// before the sweep removes them.
const retentionAfterExpiry = 30 * 24 * time.Hour

type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
	sender mailer.Sender
}

func NewHandler(db *gorm.DB, logger *slog.Logger, sender mailer.Sender) *Handler {
	return &Handler{db: db, logger: logger, sender: sender}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeAuditRecord, h.HandleAuditRecord)
	mux.HandleFunc(TypeInvitationEmail, h.HandleInvitationEmail)
	mux.HandleFunc(TypeInvitationSweep, h.HandleInvitationSweep)
}

func (h *Handler) HandleAuditRecord(ctx context.Context, t *asynq.Task) error {
	var payload AuditRecordPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	entry := models.AuditLogEntry{
		TargetTable: payload.TableName,
		Action:      payload.Action,
		RecordID:    payload.RecordID,
		UserID:      payload.UserID,
		Changes:     payload.Changes,
		CreatedAt:   payload.CreatedAt,
	}

	if err := h.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	return nil
}

func (h *Handler) HandleInvitationEmail(ctx context.Context, t *asynq.Task) error {
	var payload InvitationEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	// Skip delivery if the invitation was revoked or consumed in the
	// meantime; the token in the email would be dead anyway.
	var inv models.Invitation
	if err := h.db.WithContext(ctx).First(&inv, "id = ?", payload.InvitationID).Error; err != nil {
		h.logger.Info("invitation gone before delivery, skipping",
			"invitation_id", payload.InvitationID,
		)
		return nil
	}
	if !inv.IsActive() {
		h.logger.Info("invitation no longer active, skipping delivery",
			"invitation_id", payload.InvitationID,
			"status", inv.Status(),
		)
		return nil
	}

	if err := h.sender.SendInvitation(payload.Email, payload.Role, payload.Token, payload.ExpiresAt); err != nil {
		h.logger.Error("invitation email delivery failed",
			"invitation_id", payload.InvitationID,
			"error", err,
		)
		return err // asynq retries
	}

	h.logger.Info("invitation email delivered", "invitation_id", payload.InvitationID)
	return nil
}

// HandleInvitationSweep purges invitations that can never be redeemed
// again and have aged past the retention window.
func (h *Handler) HandleInvitationSweep(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().Add(-retentionAfterExpiry)

	result := h.db.WithContext(ctx).
		Where("(accepted_at IS NOT NULL OR expires_at < ?) AND expires_at < ?", time.Now(), cutoff).
		Delete(&models.Invitation{})
	if result.Error != nil {
		return fmt.Errorf("sweep invitations: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		h.logger.Info("swept stale invitations", "count", result.RowsAffected)
	}
	return nil
}
