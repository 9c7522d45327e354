package models

import (
	"time"

	"github.com/google/uuid"
)

// HSK registration statuses
const (
	RegistrationStatusRegistered = "registered"
	RegistrationStatusConfirmed  = "confirmed"
	RegistrationStatusCancelled  = "cancelled"
)

// ExamSession is a scheduled HSK sitting. SeatsAvailable is only ever
// decremented through a conditional update with a zero floor; handlers
// must not read-modify-write it.
type ExamSession struct {
	Base
	Level          int       `gorm:"not null" json:"level"` // HSK 1-6
	ExamDate       time.Time `gorm:"index;not null" json:"exam_date"`
	Location       string    `json:"location"`
	SeatsTotal     int       `gorm:"not null" json:"seats_total"`
	SeatsAvailable int       `gorm:"not null" json:"seats_available"`
	PriceCents     int64     `json:"price_cents"`
}

func (ExamSession) TableName() string {
	return "exam_sessions"
}

// ExamRegistration ties a candidate to a session.
type ExamRegistration struct {
	Base
	SessionID uuid.UUID `gorm:"type:uuid;index;not null" json:"session_id"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Email     string    `gorm:"index;not null" json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `gorm:"default:'registered'" json:"status"`

	Session *ExamSession `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

func (ExamRegistration) TableName() string {
	return "exam_registrations"
}
