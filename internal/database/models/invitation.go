package models

import (
	"time"

	"github.com/google/uuid"
)

// Invitation statuses. Status is derived, never stored: an expired
// invitation is just a pending row whose expiry has passed.
const (
	InvitationStatusPending  = "pending"
	InvitationStatusAccepted = "accepted"
	InvitationStatusExpired  = "expired"
)

// Invitation is a pending grant of a role to an email address. The token
// is single-use; acceptance or expiry makes it permanently inert.
type Invitation struct {
	Base
	Email      string     `gorm:"index;not null" json:"email"`
	Role       string     `gorm:"not null" json:"role"` // admin, officer
	Token      string     `gorm:"uniqueIndex;not null" json:"-"`
	InvitedBy  uuid.UUID  `gorm:"type:uuid;not null" json:"invited_by"`
	ExpiresAt  time.Time  `gorm:"index;not null" json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`

	Inviter *Profile `gorm:"foreignKey:InvitedBy" json:"inviter,omitempty"`
}

func (Invitation) TableName() string {
	return "invitations"
}

func (i *Invitation) IsAccepted() bool {
	return i.AcceptedAt != nil
}

func (i *Invitation) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// IsActive reports whether the invitation can still authorize account
// creation.
func (i *Invitation) IsActive() bool {
	return !i.IsAccepted() && !i.IsExpired()
}

func (i *Invitation) Status() string {
	switch {
	case i.IsAccepted():
		return InvitationStatusAccepted
	case i.IsExpired():
		return InvitationStatusExpired
	default:
		return InvitationStatusPending
	}
}
