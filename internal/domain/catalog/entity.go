// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog product
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"` // Price in cents
	Category    string         `gorm:"not null;size:100;index" json:"category"`
	Brand       string         `gorm:"not null;size:100" json:"brand"`
	Image       string         `gorm:"size:500" json:"image"`
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	Featured    bool           `gorm:"default:false;index" json:"featured"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// InStock reports whether the requested quantity is currently available
func (p *Product) InStock(quantity int) bool {
	return p.Stock >= quantity
}
