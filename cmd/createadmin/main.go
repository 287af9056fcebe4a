// cmd/createadmin/main.go
//
// Seeds the initial admin account. Safe to run repeatedly: an existing
// account with the given email is left untouched.
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/user"
	"github.com/your-org/storefront-api/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront-api/internal/pkg/auth"
	"github.com/your-org/storefront-api/internal/pkg/logging"
	"gorm.io/gorm"
)

func main() {
	name := flag.String("name", "Admin User", "admin display name")
	email := flag.String("email", "admin@example.com", "admin email address")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg)

	db, err := postgres.NewConnection(cfg, logging.Component(logger, "postgres"))
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	migration := postgres.NewMigration(db.GetDB(), logging.Component(logger, "migration"))
	if err := migration.RunAutoMigrations(); err != nil {
		logger.Fatalf("Database migration failed: %v", err)
	}

	var existing user.User
	err = db.GetDB().Where("email = ?", *email).First(&existing).Error
	if err == nil {
		logger.WithField("email", *email).Info("admin user already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Fatalf("Failed to check existing admin: %v", err)
	}

	passwords := auth.NewPasswordManager(cfg)
	hashed, err := passwords.HashPassword(*password)
	if err != nil {
		logger.Fatalf("Failed to hash password: %v", err)
	}

	admin := user.User{
		Name:     *name,
		Email:    *email,
		Password: hashed,
		Role:     user.RoleSuperAdmin,
		IsActive: true,
	}
	if err := db.GetDB().Create(&admin).Error; err != nil {
		logger.Fatalf("Failed to create admin: %v", err)
	}

	logger.WithField("email", admin.Email).Info("admin user created successfully")
}
