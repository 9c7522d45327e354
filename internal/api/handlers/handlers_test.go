package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/puentehua/centro-admin/internal/api"
	"github.com/puentehua/centro-admin/internal/api/handlers"
	"github.com/puentehua/centro-admin/internal/audit"
	"github.com/puentehua/centro-admin/internal/auth"
	"github.com/puentehua/centro-admin/internal/invitations"
	"github.com/puentehua/centro-admin/internal/testutil"
	"github.com/puentehua/centro-admin/pkg/config"
)

// newTestRouter assembles the real router against the in-memory store,
// with the synchronous audit path and no queue.
func newTestRouter(t *testing.T, tc *testutil.TestSetup) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:      "127.0.0.1",
			Port:      8080,
			Env:       "development",
			PublicURL: testutil.TestOrigin,
		},
		RateLimit: config.RateLimitConfig{
			Requests:      10000,
			WindowSeconds: 60,
		},
	}

	auditWriter := audit.NewWriter(tc.DB, nil, logger)
	authService := auth.NewService(tc.DB, tc.JWTService)
	invitationService := invitations.NewService(tc.DB, auditWriter, nil, logger, time.Hour)

	h := handlers.New(tc.DB, logger, auditWriter, authService, invitationService)
	return api.NewRouter(cfg, tc.DB, logger, tc.JWTService, h)
}

func newTestInvitationService(t *testing.T, tc *testutil.TestSetup) *invitations.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auditWriter := audit.NewWriter(tc.DB, nil, logger)
	return invitations.NewService(tc.DB, auditWriter, nil, logger, time.Hour)
}
