//go:build ignore

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/puentehua/centro-admin/internal/auth"
	"github.com/puentehua/centro-admin/internal/database"
	"github.com/puentehua/centro-admin/pkg/config"
	"github.com/puentehua/centro-admin/pkg/util"
)

// Bootstraps the first owner account. Every later account enters
// through the invitation flow; this is the only path that creates an
// owner directly.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	authService := auth.NewService(db, jwtService)

	email := os.Getenv("OWNER_EMAIL")
	password := os.Getenv("OWNER_PASSWORD")
	name := os.Getenv("OWNER_NAME")

	if email == "" || password == "" {
		log.Fatal("OWNER_EMAIL and OWNER_PASSWORD are required")
	}
	if name == "" {
		name = "Owner"
	}

	profile, err := authService.CreateAccount(context.Background(), auth.CreateAccountInput{
		Email:    email,
		Password: password,
		FullName: name,
		Role:     "owner",
	})
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			fmt.Printf("Owner account already exists: %s\n", email)
			return
		}
		log.Fatalf("failed to create owner account: %v", err)
	}

	fmt.Printf("Owner account created successfully!\n")
	fmt.Printf("Email: %s\n", profile.Email)
}
