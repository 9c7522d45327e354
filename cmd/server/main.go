package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/puentehua/centro-admin/internal/api"
	"github.com/puentehua/centro-admin/internal/api/handlers"
	"github.com/puentehua/centro-admin/internal/audit"
	"github.com/puentehua/centro-admin/internal/auth"
	"github.com/puentehua/centro-admin/internal/database"
	"github.com/puentehua/centro-admin/internal/invitations"
	"github.com/puentehua/centro-admin/pkg/config"
	"github.com/puentehua/centro-admin/pkg/queue"
	"github.com/puentehua/centro-admin/pkg/util"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting admin server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
	)

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database migrations complete")

	// Check Redis at startup. The audit writer and invitation delivery
	// fall back to synchronous writes without it, but a misconfigured
	// address should be visible immediately.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, background jobs degraded", "error", err)
	}
	cancelPing()
	rdb.Close()

	// Task queue client for audit entries and invitation delivery
	asynqClient := queue.NewClient(&cfg.Redis)
	defer asynqClient.Close()

	// Wire services
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	authService := auth.NewService(db, jwtService)
	auditWriter := audit.NewWriter(db, asynqClient, logger)
	invitationService := invitations.NewService(db, auditWriter, asynqClient, logger, cfg.Invite.Expiry())

	h := handlers.New(db, logger, auditWriter, authService, invitationService)
	router := api.NewRouter(cfg, db, logger, jwtService, h)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
