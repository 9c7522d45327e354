package dto

import (
	"errors"

	"github.com/puentehua/centro-admin/internal/api/validation"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if !validation.IsValidEmail(r.Email) {
		return errors.New("a valid email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}
