package dto

import (
	"errors"

	"github.com/puentehua/centro-admin/internal/api/validation"
)

// InquiryRequest is the public contact form.
type InquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Locale  string `json:"locale"`
}

func (r *InquiryRequest) Validate() error {
	if r.Name == "" || len(r.Name) > validation.MaxNameLength {
		return errors.New("name is required")
	}
	if !validation.IsValidEmail(r.Email) {
		return errors.New("a valid email is required")
	}
	if r.Phone != "" && !validation.IsValidPhone(r.Phone) {
		return errors.New("invalid phone number")
	}
	if r.Message == "" || len(r.Message) > validation.MaxMessageLength {
		return errors.New("message is required")
	}
	if r.Locale != "" && !validation.IsValidLocale(r.Locale) {
		return errors.New("unsupported locale")
	}
	return nil
}

type UpdateInquiryStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateInquiryStatusRequest) Validate() error {
	if !validation.IsValidConsultationStatus(r.Status) {
		return errors.New("invalid inquiry status")
	}
	return nil
}
