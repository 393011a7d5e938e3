// Command create_admin creates an admin account or resets its password.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"quizdeck/internal/config"
	"quizdeck/internal/database"
	"quizdeck/internal/logger"
	"quizdeck/internal/repository"
	"quizdeck/internal/service"

	"go.uber.org/zap"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (or ADMIN_PASSWORD)")
	flag.Parse()

	if *password == "" {
		*password = os.Getenv("ADMIN_PASSWORD")
	}
	if *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.Open(cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	authService, err := service.NewAuthService(repository.NewAdminDatabaseAdapter(db), cfg)
	if err != nil {
		l.Fatal("Failed to create AuthService", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := authService.UpsertAdmin(ctx, *username, *password)
	if err != nil {
		l.Fatal("Failed to save admin", zap.String("username", *username), zap.Error(err))
	}
	if created {
		l.Info("Admin user created", zap.String("username", *username))
	} else {
		l.Info("Admin password reset", zap.String("username", *username))
	}
}
