// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/domain/catalog"
	"github.com/your-org/storefront-api/internal/domain/user"
	"github.com/your-org/storefront-api/internal/domain/wishlist"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db  *gorm.DB
	log *logrus.Entry
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, log *logrus.Entry) *Migration {
	return &Migration{
		db:  db,
		log: log,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.log.Info("running database auto-migrations")

	models := []interface{}{
		&user.User{},
		&catalog.Product{},
		&wishlist.Entry{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	m.log.Info("database migrations completed")
	return nil
}
