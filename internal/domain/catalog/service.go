// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service handles catalog business logic
type Service struct {
	db  *gorm.DB
	log *logrus.Entry
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, log *logrus.Entry) *Service {
	return &Service{
		db:  db,
		log: log,
	}
}

// ListRequest represents product list query parameters
type ListRequest struct {
	Featured *bool `form:"featured"`
}

// CreateRequest represents product creation data
type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Price       int64  `json:"price" binding:"required,min=1"`
	Category    string `json:"category" binding:"required"`
	Brand       string `json:"brand" binding:"required"`
	Stock       int    `json:"stock" binding:"min=0"`
	Image       string `json:"image"`
	Featured    bool   `json:"featured"`
}

// UpdateRequest represents product update data; nil fields are left unchanged
type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Category    *string `json:"category"`
	Brand       *string `json:"brand"`
	Stock       *int    `json:"stock"`
	Image       *string `json:"image"`
	Featured    *bool   `json:"featured"`
}

// List returns products, newest first, optionally filtered to featured ones
func (s *Service) List(req *ListRequest) ([]Product, error) {
	query := s.db.Model(&Product{})
	if req.Featured != nil {
		query = query.Where("featured = ?", *req.Featured)
	}

	var products []Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// Get returns a single product by id
func (s *Service) Get(productID uint) (*Product, error) {
	var prod Product
	err := s.db.Where("id = ?", productID).First(&prod).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", productID, err)
	}
	return &prod, nil
}

// Create creates a new product
func (s *Service) Create(req *CreateRequest) (*Product, error) {
	prod := Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		Stock:       req.Stock,
		Image:       req.Image,
		Featured:    req.Featured,
	}

	if err := s.db.Create(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"product_id": prod.ID,
		"name":       prod.Name,
	}).Info("product created")

	return &prod, nil
}

// Update applies the non-nil fields of req to an existing product
func (s *Service) Update(productID uint, req *UpdateRequest) (*Product, error) {
	prod, err := s.Get(productID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}

	if len(updates) > 0 {
		if err := s.db.Model(prod).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product %d: %w", productID, err)
		}
	}

	s.log.WithField("product_id", prod.ID).Info("product updated")
	return prod, nil
}

// UpdateStock sets the stock level of a product
func (s *Service) UpdateStock(productID uint, stock int) (*Product, error) {
	prod, err := s.Get(productID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(prod).Update("stock", stock).Error; err != nil {
		return nil, fmt.Errorf("failed to update stock for product %d: %w", productID, err)
	}

	return prod, nil
}

// Delete soft-deletes a product
func (s *Service) Delete(productID uint) error {
	result := s.db.Delete(&Product{}, productID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", productID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	s.log.WithField("product_id", productID).Info("product deleted")
	return nil
}
