// internal/domain/wishlist/store.go
package wishlist

import (
	"context"
	"fmt"

	"github.com/your-org/storefront-api/internal/domain/catalog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists the per-user wishlist set.
type Store interface {
	// Add inserts a product into the wishlist. Idempotent: adding a product
	// already present is a no-op, not an error.
	Add(ctx context.Context, userID, productID uint) error
	// Remove deletes a product from the wishlist; no-op when absent.
	Remove(ctx context.Context, userID, productID uint) error
	// ProductIDs returns the wishlisted product ids in insertion order.
	ProductIDs(ctx context.Context, userID uint) ([]uint, error)
	// Products returns the wishlist resolved to full catalog records.
	Products(ctx context.Context, userID uint) ([]catalog.Product, error)
}

// GormStore keeps wishlist entries in Postgres
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a database-backed wishlist store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Add implements Store. ON CONFLICT DO NOTHING makes the insert idempotent
// at the database, so concurrent adds cannot create duplicates.
func (s *GormStore) Add(ctx context.Context, userID, productID uint) error {
	entry := Entry{UserID: userID, ProductID: productID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to add product %d to wishlist: %w", productID, err)
	}
	return nil
}

// Remove implements Store
func (s *GormStore) Remove(ctx context.Context, userID, productID uint) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&Entry{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove product %d from wishlist: %w", productID, err)
	}
	return nil
}

// ProductIDs implements Store
func (s *GormStore) ProductIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&Entry{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist for user %d: %w", userID, err)
	}
	return ids, nil
}

// Products implements Store
func (s *GormStore) Products(ctx context.Context, userID uint) ([]catalog.Product, error) {
	var products []catalog.Product
	err := s.db.WithContext(ctx).
		Joins("JOIN wishlist_entries ON wishlist_entries.product_id = products.id").
		Where("wishlist_entries.user_id = ?", userID).
		Order("wishlist_entries.id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve wishlist for user %d: %w", userID, err)
	}
	return products, nil
}
