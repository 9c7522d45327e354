// Package audit records sensitive mutations. Writes are best-effort
// observability: a failed audit write is logged and swallowed, never
// escalated, because the mutation it describes already succeeded.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/puentehua/centro-admin/internal/database/models"
	"github.com/puentehua/centro-admin/internal/tasks"
	"gorm.io/gorm"
)

type Writer struct {
	db     *gorm.DB
	client *asynq.Client
	logger *slog.Logger
}

// NewWriter builds an audit writer. With an asynq client the entry is
// enqueued and written by the worker; without one (tests, degraded
// redis) it is inserted synchronously.
func NewWriter(db *gorm.DB, client *asynq.Client, logger *slog.Logger) *Writer {
	return &Writer{db: db, client: client, logger: logger}
}

type Entry struct {
	TableName string
	Action    string // models.AuditActionInsert/Update/Delete
	RecordID  string
	UserID    uuid.UUID
	Changes   string
}

// Record appends one audit entry. Never returns an error to the caller.
func (w *Writer) Record(ctx context.Context, e Entry) {
	now := time.Now()

	if w.client != nil {
		task, err := tasks.NewAuditRecordTask(tasks.AuditRecordPayload{
			TableName: e.TableName,
			Action:    e.Action,
			RecordID:  e.RecordID,
			UserID:    e.UserID,
			Changes:   e.Changes,
			CreatedAt: now,
		})
		if err == nil {
			if _, err = w.client.EnqueueContext(ctx, task); err == nil {
				return
			}
		}
		w.logger.Warn("audit enqueue failed, falling back to direct insert", "error", err)
	}

	row := models.AuditLogEntry{
		TargetTable: e.TableName,
		Action:      e.Action,
		RecordID:    e.RecordID,
		UserID:      e.UserID,
		Changes:     e.Changes,
		CreatedAt:   now,
	}
	if err := w.db.WithContext(ctx).Create(&row).Error; err != nil {
		w.logger.Error("audit write failed",
			"table", e.TableName,
			"action", e.Action,
			"record_id", e.RecordID,
			"error", err,
		)
	}
}
