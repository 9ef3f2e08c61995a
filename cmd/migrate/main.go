package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/internal/infrastructure/database"
	"github.com/johnquangdev/sales-review/pkg/config"
)

// migrate applies or reverts the embedded SQL migrations.
//
//	go run ./cmd/migrate            # apply pending migrations
//	go run ./cmd/migrate -down 1    # revert the last migration
func main() {
	down := flag.Int("down", 0, "number of migrations to revert instead of applying")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if *down > 0 {
		n, err := database.Rollback(db, *down)
		if err != nil {
			logger.Fatal("Rollback failed", zap.Int("reverted", n), zap.Error(err))
		}
		logger.Info("✅ Migrations reverted", zap.Int("count", n))
		return
	}

	logger.Info("🔄 Applying migrations...")
	n, err := database.Migrate(db)
	if err != nil {
		logger.Fatal("Migration failed", zap.Int("applied", n), zap.Error(err))
	}
	logger.Info("✅ Migrations applied", zap.Int("count", n))
}
