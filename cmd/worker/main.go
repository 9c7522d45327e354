package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/puentehua/centro-admin/internal/database"
	"github.com/puentehua/centro-admin/internal/mailer"
	"github.com/puentehua/centro-admin/internal/tasks"
	"github.com/puentehua/centro-admin/pkg/config"
	"github.com/puentehua/centro-admin/pkg/queue"
	"github.com/puentehua/centro-admin/pkg/util"
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

	logger.Info("starting worker")

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	sender := mailer.NewSMTPSender(&cfg.SMTP, cfg.Server.PublicURL)
	handler := tasks.NewHandler(db, logger, sender)

	mux := asynq.NewServeMux()
	handler.RegisterHandlers(mux)

	srv := queue.NewServer(&cfg.Redis, 10)

	// Recurring maintenance: purge dead invitations past retention.
	scheduler := queue.NewScheduler(&cfg.Redis)
	if _, err := scheduler.Register("@daily", tasks.NewInvitationSweepTask()); err != nil {
		logger.Error("failed to register sweep schedule", "error", err)
		os.Exit(1)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error("scheduler failed", "error", err)
			os.Exit(1)
		}
	}()

	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Error("worker failed", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("worker running")

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done

	logger.Info("shutting down worker")
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("worker stopped")
}
