// internal/infrastructure/database/postgres/connection.go
package postgres

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB wraps the gorm database handle
type DB struct {
	gorm *gorm.DB
	log  *logrus.Entry
}

// NewConnection opens a Postgres connection pool
func NewConnection(cfg *config.Config, log *logrus.Entry) (*DB, error) {
	gormConfig := &gorm.Config{}
	if cfg.IsProduction() {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database pool: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	log.Info("database connection established")

	return &DB{gorm: db, log: log}, nil
}

// GetDB returns the underlying gorm handle
func (d *DB) GetDB() *gorm.DB {
	return d.gorm
}

// Close closes the connection pool
func (d *DB) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health checks the database connection
func (d *DB) Health() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- sqlDB.Ping() }()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("database ping timed out")
	}
}
