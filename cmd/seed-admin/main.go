package main

import (
	"context"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/adapter/repository"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/infrastructure/database"
	"github.com/johnquangdev/sales-review/internal/usecase/user"
	"github.com/johnquangdev/sales-review/pkg/config"
)

// seed-admin provisions the first admin account. The password is read from
// SEED_ADMIN_PASSWORD so it does not end up in shell history.
func main() {
	username := flag.String("username", "admin", "admin username")
	name := flag.String("name", "Administrator", "display name")
	flag.Parse()

	plain := os.Getenv("SEED_ADMIN_PASSWORD")
	if plain == "" {
		log.Fatal("SEED_ADMIN_PASSWORD is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if _, err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	svc := user.NewService(repository.NewUserRepository(db), repository.NewSessionRepository(db), logger)
	u, err := svc.Create(ctx, user.CreateInput{
		Username: *username,
		Name:     *name,
		Password: plain,
		Role:     entities.RoleAdmin,
	})
	switch {
	case errors.Is(err, errors.ErrorCode_ALREADY_EXISTS):
		logger.Info("admin already exists, nothing to do", zap.String("username", *username))
	case err != nil:
		logger.Fatal("Failed to create admin", zap.Error(err))
	default:
		logger.Info("✅ Admin created", zap.String("id", u.ID.String()), zap.String("username", *username))
	}
}
