package tasks

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeAuditRecord     = "audit:record"
	TypeInvitationEmail = "email:invitation"
	TypeInvitationSweep = "invitations:sweep"
)

// AuditRecordPayload carries one append-only audit entry.
type AuditRecordPayload struct {
	TableName string    `json:"table_name"`
	Action    string    `json:"action"`
	RecordID  string    `json:"record_id"`
	UserID    uuid.UUID `json:"user_id"`
	Changes   string    `json:"changes"`
	CreatedAt time.Time `json:"created_at"`
}

func NewAuditRecordTask(payload AuditRecordPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAuditRecord, data, asynq.Queue("low")), nil
}

// InvitationEmailPayload triggers out-of-band delivery of an invitation.
// Delivery failure never rolls back the invitation row; the task retries
// and the invitation stays valid and resendable.
type InvitationEmailPayload struct {
	InvitationID uuid.UUID `json:"invitation_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Token        string    `json:"token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func NewInvitationEmailTask(payload InvitationEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeInvitationEmail, data, asynq.Queue("critical")), nil
}

// InvitationSweepPayload is empty - the sweep purges every stale invitation.
type InvitationSweepPayload struct{}

func NewInvitationSweepTask() *asynq.Task {
	return asynq.NewTask(TypeInvitationSweep, nil, asynq.Queue("low"))
}
