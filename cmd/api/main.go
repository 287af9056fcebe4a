// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront-api/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-api/internal/interfaces/http"
	"github.com/your-org/storefront-api/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg)
	logger.WithFields(map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Infof("starting %s", cfg.App.Name)

	db, err := postgres.NewConnection(cfg, logging.Component(logger, "postgres"))
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := redis.NewConnection(cfg, logging.Component(logger, "redis"))
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := db.Health(); err != nil {
		logger.Fatalf("Database health check failed: %v", err)
	}
	if err := redisClient.Health(); err != nil {
		logger.Fatalf("Redis health check failed: %v", err)
	}

	migration := postgres.NewMigration(db.GetDB(), logging.Component(logger, "migration"))
	if err := migration.RunAutoMigrations(); err != nil {
		logger.Fatalf("Database migration failed: %v", err)
	}

	server := http.NewServer(cfg, db.GetDB(), redisClient.GetClient(), logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	logger.Info("server shutdown completed")
}
