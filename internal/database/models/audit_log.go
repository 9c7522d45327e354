package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit actions
const (
	AuditActionInsert = "INSERT"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// AuditLogEntry is an append-only record of a sensitive mutation.
// The core never updates or deletes rows in this table.
type AuditLogEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TargetTable string    `gorm:"column:table_name;index;not null" json:"table_name"`
	Action      string    `gorm:"not null" json:"action"` // INSERT, UPDATE, DELETE
	RecordID    string    `gorm:"index" json:"record_id"`
	UserID      uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Changes     string    `json:"changes"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (AuditLogEntry) TableName() string {
	return "audit_logs"
}

func (e *AuditLogEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
