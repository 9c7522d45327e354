package models

import "github.com/google/uuid"

// Profile is a provisioned staff account. The ID doubles as the
// identity-provider subject, so sessions and rows share one key.
type Profile struct {
	Base
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FullName     string     `json:"full_name"`
	Role         string     `gorm:"default:'officer'" json:"role"` // owner, admin, officer
	InvitedBy    *uuid.UUID `gorm:"type:uuid" json:"invited_by,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`

	Inviter *Profile `gorm:"foreignKey:InvitedBy" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}
