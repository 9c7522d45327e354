package dto

import (
	"errors"
	"time"

	"github.com/puentehua/centro-admin/internal/api/validation"
)

type ExamSessionRequest struct {
	Level      int       `json:"level"`
	ExamDate   time.Time `json:"exam_date"`
	Location   string    `json:"location"`
	SeatsTotal int       `json:"seats_total"`
	PriceCents int64     `json:"price_cents"`
}

func (r *ExamSessionRequest) Validate() error {
	if !validation.IsValidHSKLevel(r.Level) {
		return errors.New("level must be between 1 and 6")
	}
	if !validation.IsFutureDate(r.ExamDate) {
		return errors.New("exam date must be in the future")
	}
	if !validation.IsValidSeatCount(r.SeatsTotal) {
		return errors.New("seat count must be between 1 and 1000")
	}
	if r.PriceCents < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

// ExamRegistrationRequest is the public signup form for a sitting.
type ExamRegistrationRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

func (r *ExamRegistrationRequest) Validate() error {
	if r.FullName == "" || len(r.FullName) > validation.MaxNameLength {
		return errors.New("full name is required")
	}
	if !validation.IsValidEmail(r.Email) {
		return errors.New("a valid email is required")
	}
	if r.Phone != "" && !validation.IsValidPhone(r.Phone) {
		return errors.New("invalid phone number")
	}
	return nil
}

type UpdateRegistrationStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateRegistrationStatusRequest) Validate() error {
	if !validation.IsValidRegistrationStatus(r.Status) {
		return errors.New("invalid registration status")
	}
	return nil
}
