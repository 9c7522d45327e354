// Package invitations implements the staff invitation lifecycle:
// pending → accepted, or dead via expiry or revocation. A consumed or
// expired token never authorizes account creation again.
package invitations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/puentehua/centro-admin/internal/audit"
	"github.com/puentehua/centro-admin/internal/auth"
	"github.com/puentehua/centro-admin/internal/database/models"
	"github.com/puentehua/centro-admin/internal/rbac"
	"github.com/puentehua/centro-admin/internal/tasks"
	"gorm.io/gorm"
)

var (
	// ErrCannotInvite means the actor's role may not grant the target role.
	ErrCannotInvite = errors.New("role cannot be granted by this actor")
	// ErrEmailTaken means an active profile already holds the email.
	ErrEmailTaken = errors.New("email already belongs to an account")
	// ErrActiveInvitation means a pending, unexpired invitation already
	// exists for the email.
	ErrActiveInvitation = errors.New("an active invitation already exists for this email")
	// ErrNotFound covers wrong, expired and consumed tokens alike so the
	// response never reveals which one it was.
	ErrNotFound = errors.New("invitation not found")
	// ErrProfileCreation means the invitation was valid but provisioning
	// the account failed. Distinct from invitation-state errors so the
	// caller knows the token was not consumed.
	ErrProfileCreation = errors.New("account provisioning failed")
)

type Service struct {
	db     *gorm.DB
	audit  *audit.Writer
	client *asynq.Client
	logger *slog.Logger
	expiry time.Duration
}

func NewService(db *gorm.DB, auditWriter *audit.Writer, client *asynq.Client, logger *slog.Logger, expiry time.Duration) *Service {
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &Service{
		db:     db,
		audit:  auditWriter,
		client: client,
		logger: logger,
		expiry: expiry,
	}
}

// Create issues an invitation. The caller has already passed the request
// guard; this enforces the invite matrix and the one-active-invitation
// invariant, persists the row, and triggers delivery plus an audit entry.
// Delivery is queued and never rolls the invitation back.
func (s *Service) Create(ctx context.Context, actor *models.Profile, email, role string) (*models.Invitation, error) {
	if !rbac.CanInviteRole(rbac.Role(actor.Role), rbac.Role(role)) {
		return nil, ErrCannotInvite
	}

	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.Profile
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var active models.Invitation
	err := s.db.WithContext(ctx).
		Where("email = ? AND accepted_at IS NULL AND expires_at > ?", email, time.Now()).
		First(&active).Error
	if err == nil {
		return nil, ErrActiveInvitation
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	token, err := GenerateToken()
	if err != nil {
		return nil, err
	}

	inv := models.Invitation{
		Email:     email,
		Role:      role,
		Token:     token,
		InvitedBy: actor.ID,
		ExpiresAt: time.Now().Add(s.expiry),
	}

	if err := s.db.WithContext(ctx).Create(&inv).Error; err != nil {
		return nil, err
	}

	s.enqueueDelivery(ctx, &inv)

	s.audit.Record(ctx, audit.Entry{
		TableName: "invitations",
		Action:    models.AuditActionInsert,
		RecordID:  inv.ID.String(),
		UserID:    actor.ID,
		Changes:   fmt.Sprintf("invited %s as %s", inv.Email, inv.Role),
	})

	return &inv, nil
}

// GetByToken resolves a token to its invitation. Only an exact match on
// a pending, unexpired invitation succeeds; every other case is
// ErrNotFound, indistinguishable by design.
func (s *Service) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	var inv models.Invitation
	err := s.db.WithContext(ctx).
		Where("token = ? AND accepted_at IS NULL AND expires_at > ?", token, time.Now()).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// AcceptInput carries the already-validated acceptance fields.
type AcceptInput struct {
	Token    string
	Password string
	FullName string
}

// Accept claims the invitation and provisions the account in one store
// transaction. The claim is a conditional update on the pending state,
// so exactly one of two concurrent accepts can win; the loser gets
// ErrNotFound. A failed provisioning rolls the claim back, leaving the
// invitation pending and retryable.
func (s *Service) Accept(ctx context.Context, input AcceptInput) (*models.Profile, error) {
	var inv models.Invitation
	err := s.db.WithContext(ctx).Where("token = ?", input.Token).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !inv.IsActive() {
		return nil, ErrNotFound
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileCreation, err)
	}

	now := time.Now()
	profile := models.Profile{
		Email:        inv.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
		Role:         inv.Role,
		InvitedBy:    &inv.InvitedBy,
		IsActive:     true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Atomic claim: only the pending, unexpired row can transition.
		claim := tx.Model(&models.Invitation{}).
			Where("id = ? AND accepted_at IS NULL AND expires_at > ?", inv.ID, now).
			Update("accepted_at", now)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrProfileCreation, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		TableName: "invitations",
		Action:    models.AuditActionUpdate,
		RecordID:  inv.ID.String(),
		UserID:    profile.ID,
		Changes:   fmt.Sprintf("invitation accepted, profile created with role %s", profile.Role),
	})

	return &profile, nil
}

// Revoke deletes a still-pending invitation. Revoking an accepted
// invitation is not-found, never an error implying the provisioned
// account was touched.
func (s *Service) Revoke(ctx context.Context, actor *models.Profile, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND accepted_at IS NULL", id).
		Delete(&models.Invitation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	s.audit.Record(ctx, audit.Entry{
		TableName: "invitations",
		Action:    models.AuditActionDelete,
		RecordID:  id.String(),
		UserID:    actor.ID,
		Changes:   "invitation revoked",
	})

	return nil
}

// List returns invitations newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Invitation, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Invitation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invs []models.Invitation
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&invs).Error
	if err != nil {
		return nil, 0, err
	}

	return invs, total, nil
}

func (s *Service) enqueueDelivery(ctx context.Context, inv *models.Invitation) {
	if s.client == nil {
		return
	}

	task, err := tasks.NewInvitationEmailTask(tasks.InvitationEmailPayload{
		InvitationID: inv.ID,
		Email:        inv.Email,
		Role:         inv.Role,
		Token:        inv.Token,
		ExpiresAt:    inv.ExpiresAt,
	})
	if err == nil {
		_, err = s.client.EnqueueContext(ctx, task)
	}
	if err != nil {
		// The invitation stays valid; delivery can be retried manually.
		s.logger.Error("failed to enqueue invitation email",
			"invitation_id", inv.ID,
			"error", err,
		)
	}
}
