package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/puentehua/centro-admin/internal/api/validation"
	"github.com/puentehua/centro-admin/internal/database/models"
)

type CreateInvitationRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (r *CreateInvitationRequest) Validate() error {
	if !validation.IsValidEmail(r.Email) {
		return errors.New("a valid email is required")
	}
	if r.Role != "admin" && r.Role != "officer" {
		return errors.New("role must be admin or officer")
	}
	return nil
}

// AcceptInvitationRequest completes an invitation. The token arrives in
// the URL path, not the body.
type AcceptInvitationRequest struct {
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

func (r *AcceptInvitationRequest) Validate() error {
	if ok, msg := validation.IsValidPassword(r.Password); !ok {
		return errors.New(msg)
	}
	if r.FullName == "" || len(r.FullName) > validation.MaxNameLength {
		return errors.New("full name is required")
	}
	return nil
}

// InvitationResponse exposes an invitation without its token.
type InvitationResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	InvitedBy uuid.UUID `json:"invited_by"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func NewInvitationResponse(inv *models.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:        inv.ID,
		Email:     inv.Email,
		Role:      inv.Role,
		Status:    inv.Status(),
		InvitedBy: inv.InvitedBy,
		ExpiresAt: inv.ExpiresAt,
		CreatedAt: inv.CreatedAt,
	}
}

// PublicInvitationResponse is what the unauthenticated accept page sees:
// just enough to render the signup form.
type PublicInvitationResponse struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
