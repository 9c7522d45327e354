package invitations_test

import (
	"context"
	"encoding/base64"
	"log/slog"
	"testing"
	"time"

	"github.com/puentehua/centro-admin/internal/audit"
	"github.com/puentehua/centro-admin/internal/database/models"
	"github.com/puentehua/centro-admin/internal/invitations"
	"github.com/puentehua/centro-admin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, db *gorm.DB, expiry time.Duration) *invitations.Service {
	t.Helper()
	logger := slog.Default()
	writer := audit.NewWriter(db, nil, logger)
	return invitations.NewService(db, writer, nil, logger, expiry)
}

func TestGenerateToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := invitations.GenerateToken()
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(raw), 32, "token must carry at least 32 bytes of entropy")

		assert.False(t, seen[token], "token collision")
		seen[token] = true
	}
}

func TestCreateInvitation(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	svc := newTestService(t, tc.DB, time.Hour)
	ctx := context.Background()

	t.Run("owner invites officer", func(t *testing.T) {
		inv, err := svc.Create(ctx, tc.Owner, "new@staff.org", "officer")
		require.NoError(t, err)
		assert.Equal(t, "new@staff.org", inv.Email)
		assert.Equal(t, "officer", inv.Role)
		assert.Equal(t, tc.Owner.ID, inv.InvitedBy)
		assert.NotEmpty(t, inv.Token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), inv.ExpiresAt, time.Minute)

		// audit entry written
		var entry models.AuditLogEntry
		err = tc.DB.Where("table_name = ? AND action = ?", "invitations", "INSERT").First(&entry).Error
		require.NoError(t, err)
		assert.Equal(t, tc.Owner.ID, entry.UserID)
	})

	t.Run("owner invites admin", func(t *testing.T) {
		_, err := svc.Create(ctx, tc.Owner, "second@staff.org", "admin")
		assert.NoError(t, err)
	})

	t.Run("admin invites officer", func(t *testing.T) {
		_, err := svc.Create(ctx, tc.Admin, "third@staff.org", "officer")
		assert.NoError(t, err)
	})

	t.Run("admin cannot invite admin", func(t *testing.T) {
		_, err := svc.Create(ctx, tc.Admin, "fourth@staff.org", "admin")
		assert.ErrorIs(t, err, invitations.ErrCannotInvite)
	})

	t.Run("officer cannot invite anyone", func(t *testing.T) {
		_, err := svc.Create(ctx, tc.Officer, "fifth@staff.org", "officer")
		assert.ErrorIs(t, err, invitations.ErrCannotInvite)
	})

	t.Run("owner role is not grantable", func(t *testing.T) {
		_, err := svc.Create(ctx, tc.Owner, "sixth@staff.org", "owner")
		assert.ErrorIs(t, err, invitations.ErrCannotInvite)
	})

	t.Run("email with existing profile conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, tc.Owner, tc.Officer.Email, "officer")
		assert.ErrorIs(t, err, invitations.ErrEmailTaken)

		var count int64
		tc.DB.Model(&models.Invitation{}).Where("email = ?", tc.Officer.Email).Count(&count)
		assert.Zero(t, count, "no invitation row may be created on conflict")
	})

	t.Run("second active invitation conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, tc.Owner, "new@staff.org", "officer")
		assert.ErrorIs(t, err, invitations.ErrActiveInvitation)
	})

	t.Run("creation succeeds after revocation", func(t *testing.T) {
		var inv models.Invitation
		require.NoError(t, tc.DB.Where("email = ?", "new@staff.org").First(&inv).Error)
		require.NoError(t, svc.Revoke(ctx, tc.Owner, inv.ID))

		_, err := svc.Create(ctx, tc.Owner, "new@staff.org", "officer")
		assert.NoError(t, err)
	})

	t.Run("creation succeeds after expiry", func(t *testing.T) {
		expired := testutil.CreateTestInvitation(t, tc.DB, "stale@staff.org", "officer", tc.Owner.ID, time.Now().Add(-time.Minute))
		_ = expired

		_, err := svc.Create(ctx, tc.Owner, "stale@staff.org", "officer")
		assert.NoError(t, err)
	})
}

func TestGetByToken(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	svc := newTestService(t, tc.DB, time.Hour)
	ctx := context.Background()

	inv, err := svc.Create(ctx, tc.Owner, "lookup@staff.org", "officer")
	require.NoError(t, err)

	t.Run("valid token resolves", func(t *testing.T) {
		got, err := svc.GetByToken(ctx, inv.Token)
		require.NoError(t, err)
		assert.Equal(t, inv.ID, got.ID)
	})

	t.Run("wrong token is not found", func(t *testing.T) {
		_, err := svc.GetByToken(ctx, "definitely-not-a-real-token-value")
		assert.ErrorIs(t, err, invitations.ErrNotFound)
	})

	t.Run("expired token is not found even if unaccepted", func(t *testing.T) {
		expired := testutil.CreateTestInvitation(t, tc.DB, "old@staff.org", "officer", tc.Owner.ID, time.Now().Add(-time.Minute))
		_, err := svc.GetByToken(ctx, expired.Token)
		assert.ErrorIs(t, err, invitations.ErrNotFound)
	})

	t.Run("accepted token is not found", func(t *testing.T) {
		_, err := svc.Accept(ctx, invitations.AcceptInput{
			Token:    inv.Token,
			Password: "Str0ng!Passw0rd",
			FullName: "New Officer",
		})
		require.NoError(t, err)

		_, err = svc.GetByToken(ctx, inv.Token)
		assert.ErrorIs(t, err, invitations.ErrNotFound)
	})
}

func TestAccept(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	svc := newTestService(t, tc.DB, time.Hour)
	ctx := context.Background()

	t.Run("acceptance provisions profile and consumes token", func(t *testing.T) {
		inv, err := svc.Create(ctx, tc.Owner, "accept@staff.org", "officer")
		require.NoError(t, err)

		profile, err := svc.Accept(ctx, invitations.AcceptInput{
			Token:    inv.Token,
			Password: "Str0ng!Passw0rd",
			FullName: "Accepted Officer",
		})
		require.NoError(t, err)
		assert.Equal(t, "accept@staff.org", profile.Email)
		assert.Equal(t, "officer", profile.Role)
		require.NotNil(t, profile.InvitedBy)
		assert.Equal(t, tc.Owner.ID, *profile.InvitedBy)
		assert.True(t, profile.IsActive)

		var stored models.Invitation
		require.NoError(t, tc.DB.First(&stored, "id = ?", inv.ID).Error)
		assert.NotNil(t, stored.AcceptedAt)
		assert.Equal(t, "accepted", stored.Status())

		// second attempt with the same token must fail and must not
		// provision a second profile
		_, err = svc.Accept(ctx, invitations.AcceptInput{
			Token:    inv.Token,
			Password: "An0ther!Passw0rd",
			FullName: "Impostor",
		})
		assert.ErrorIs(t, err, invitations.ErrNotFound)

		var count int64
		tc.DB.Model(&models.Profile{}).Where("email = ?", "accept@staff.org").Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("expired invitation cannot be accepted", func(t *testing.T) {
		expired := testutil.CreateTestInvitation(t, tc.DB, "late@staff.org", "officer", tc.Owner.ID, time.Now().Add(-time.Minute))

		_, err := svc.Accept(ctx, invitations.AcceptInput{
			Token:    expired.Token,
			Password: "Str0ng!Passw0rd",
			FullName: "Too Late",
		})
		assert.ErrorIs(t, err, invitations.ErrNotFound)
	})

	t.Run("failed provisioning leaves the invitation pending", func(t *testing.T) {
		inv, err := svc.Create(ctx, tc.Owner, "clash@staff.org", "officer")
		require.NoError(t, err)

		// Provision a profile with the same email behind the service's
		// back so the insert inside the claim transaction collides.
		rogue := testutil.CreateTestProfile(t, tc.DB, "officer")
		require.NoError(t, tc.DB.Model(rogue).Update("email", "clash@staff.org").Error)

		_, err = svc.Accept(ctx, invitations.AcceptInput{
			Token:    inv.Token,
			Password: "Str0ng!Passw0rd",
			FullName: "Clashing",
		})
		assert.ErrorIs(t, err, invitations.ErrProfileCreation)

		// claim rolled back: invitation still pending and retrievable
		got, err := svc.GetByToken(ctx, inv.Token)
		require.NoError(t, err)
		assert.Nil(t, got.AcceptedAt)
	})
}

func TestRevoke(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	svc := newTestService(t, tc.DB, time.Hour)
	ctx := context.Background()

	t.Run("pending invitation revoked", func(t *testing.T) {
		inv, err := svc.Create(ctx, tc.Owner, "revoke@staff.org", "officer")
		require.NoError(t, err)

		require.NoError(t, svc.Revoke(ctx, tc.Owner, inv.ID))

		var count int64
		tc.DB.Model(&models.Invitation{}).Where("id = ?", inv.ID).Count(&count)
		assert.Zero(t, count)

		var entry models.AuditLogEntry
		err = tc.DB.Where("table_name = ? AND action = ?", "invitations", "DELETE").First(&entry).Error
		assert.NoError(t, err)
	})

	t.Run("revoking an accepted invitation is not found", func(t *testing.T) {
		inv, err := svc.Create(ctx, tc.Owner, "done@staff.org", "officer")
		require.NoError(t, err)

		_, err = svc.Accept(ctx, invitations.AcceptInput{
			Token:    inv.Token,
			Password: "Str0ng!Passw0rd",
			FullName: "Done",
		})
		require.NoError(t, err)

		err = svc.Revoke(ctx, tc.Owner, inv.ID)
		assert.ErrorIs(t, err, invitations.ErrNotFound)

		// the provisioned account is untouched
		var count int64
		tc.DB.Model(&models.Profile{}).Where("email = ?", "done@staff.org").Count(&count)
		assert.EqualValues(t, 1, count)
	})
}

func TestList(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	svc := newTestService(t, tc.DB, time.Hour)
	ctx := context.Background()

	for _, email := range []string{"a@staff.org", "b@staff.org", "c@staff.org"} {
		_, err := svc.Create(ctx, tc.Owner, email, "officer")
		require.NoError(t, err)
	}

	invs, total, err := svc.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, invs, 2)

	invs, _, err = svc.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, invs, 1)
}
