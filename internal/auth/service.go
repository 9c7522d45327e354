package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/puentehua/centro-admin/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("user is inactive")
)

// Service is the identity provider: it owns credentials and session
// issuance. Everything else treats it as a collaborator and works with
// the opaque profile ID it hands out.
type Service struct {
	db  *gorm.DB
	jwt *JWTService
}

func NewService(db *gorm.DB, jwt *JWTService) *Service {
	return &Service{db: db, jwt: jwt}
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResponse struct {
	Token string          `json:"token"`
	User  *models.Profile `json:"user"`
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(input.Email)).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !profile.IsActive {
		return nil, ErrInactiveUser
	}

	if !CheckPassword(input.Password, profile.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(profile.ID, profile.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		User:  &profile,
	}, nil
}

// CreateAccountInput provisions credentials for a new staff account.
// Used by the invitation acceptance flow and the bootstrap path.
type CreateAccountInput struct {
	Email     string
	Password  string
	FullName  string
	Role      string
	InvitedBy *uuid.UUID
}

// CreateAccount creates the identity record and its profile row in one
// transaction so an account can never exist without a profile.
func (s *Service) CreateAccount(ctx context.Context, input CreateAccountInput) (*models.Profile, error) {
	email := normalizeEmail(input.Email)

	var existing models.Profile
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	profile := models.Profile{
		Email:        email,
		PasswordHash: hash,
		FullName:     input.FullName,
		Role:         input.Role,
		InvitedBy:    input.InvitedBy,
		IsActive:     true,
	}

	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		return nil, err
	}

	return &profile, nil
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// normalizeEmail lowercases addresses so the unique index is
// case-insensitive in practice.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
