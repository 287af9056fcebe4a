// internal/domain/cart/catalog.go
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/storefront-api/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormCatalog adapts the product table to the Catalog contract
type GormCatalog struct {
	db *gorm.DB
}

// NewGormCatalog creates a catalog lookup backed by the product table
func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// Resolve implements Catalog
func (g *GormCatalog) Resolve(ctx context.Context, productID uint) (*ProductDetails, error) {
	var prod catalog.Product
	err := g.db.WithContext(ctx).Where("id = ?", productID).First(&prod).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product %d: %w", productID, err)
	}

	return &ProductDetails{
		ID:    prod.ID,
		Name:  prod.Name,
		Price: prod.Price,
		Image: prod.Image,
		Stock: prod.Stock,
	}, nil
}
