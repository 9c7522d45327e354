package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/puentehua/centro-admin/internal/database/models"
)

// IdentityProvider defines the operations the rest of the system needs
// from the identity layer.
type IdentityProvider interface {
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)
	CreateAccount(ctx context.Context, input CreateAccountInput) (*models.Profile, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Compile-time interface satisfaction checks
var (
	_ IdentityProvider = (*Service)(nil)
	_ TokenService     = (*JWTService)(nil)
)
