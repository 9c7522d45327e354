package dto

import (
	"errors"

	"github.com/puentehua/centro-admin/internal/api/validation"
)

// UpdateSelfRequest is the profile-edit surface a caller has over their
// own row. Role and activation are deliberately absent.
type UpdateSelfRequest struct {
	FullName string `json:"full_name"`
}

func (r *UpdateSelfRequest) Validate() error {
	if r.FullName == "" || len(r.FullName) > validation.MaxNameLength {
		return errors.New("full name is required")
	}
	return nil
}

// UpdateUserRequest is the management surface over another account.
// Nil fields are left untouched.
type UpdateUserRequest struct {
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	if r.Role == nil && r.IsActive == nil {
		return errors.New("nothing to update")
	}
	if r.Role != nil && *r.Role != "admin" && *r.Role != "officer" {
		return errors.New("role must be admin or officer")
	}
	return nil
}
