// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/domain/catalog"
	"gorm.io/gorm"
)

// Catalog answers product existence checks for wishlist adds
type Catalog interface {
	Exists(ctx context.Context, productID uint) (bool, error)
}

// AddRequest represents an add-to-wishlist request
type AddRequest struct {
	ProductID uint `json:"productId" binding:"required"`
}

// Service owns the wishlist set operations
type Service struct {
	store   Store
	catalog Catalog
	log     *logrus.Entry
}

// NewService creates a new wishlist service
func NewService(store Store, cat Catalog, log *logrus.Entry) *Service {
	return &Service{
		store:   store,
		catalog: cat,
		log:     log,
	}
}

// Add inserts a product into the user's wishlist and returns the resulting
// product id set. The product must resolve in the catalog; adding a product
// already on the wishlist is a no-op.
func (s *Service) Add(ctx context.Context, userID, productID uint) ([]uint, error) {
	ok, err := s.catalog.Exists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProductNotFound
	}

	if err := s.store.Add(ctx, userID, productID); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":    userID,
		"product_id": productID,
	}).Info("product added to wishlist")

	return s.productIDs(ctx, userID)
}

// Get returns the wishlist resolved to full catalog records
func (s *Service) Get(ctx context.Context, userID uint) ([]catalog.Product, error) {
	products, err := s.store.Products(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Zero rows leave the slice nil; clients always get a JSON array
	if products == nil {
		products = []catalog.Product{}
	}
	return products, nil
}

// Remove deletes a product from the user's wishlist and returns the
// remaining product ids. Removing an absent product is a no-op.
func (s *Service) Remove(ctx context.Context, userID, productID uint) ([]uint, error) {
	if err := s.store.Remove(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.productIDs(ctx, userID)
}

func (s *Service) productIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids, err := s.store.ProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

// GormCatalog checks product existence against the product table
type GormCatalog struct {
	db *gorm.DB
}

// NewGormCatalog creates a catalog existence check backed by the product table
func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// Exists implements Catalog
func (g *GormCatalog) Exists(ctx context.Context, productID uint) (bool, error) {
	var prod catalog.Product
	err := g.db.WithContext(ctx).Select("id").Where("id = ?", productID).First(&prod).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check product %d: %w", productID, err)
	}
	return true, nil
}
