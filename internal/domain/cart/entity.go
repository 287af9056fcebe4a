// internal/domain/cart/entity.go
package cart

import "time"

// PlaceholderImage is snapshotted for products without a catalog image
const PlaceholderImage = "/images/placeholder.jpg"

// Size is a product size variant
type Size string

// Supported size variants
const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// DefaultSize is used when a request does not specify a size
const DefaultSize = SizeM

// Valid reports whether s is a supported size variant
func (s Size) Valid() bool {
	switch s {
	case SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL:
		return true
	}
	return false
}

// Item is a single cart line. Price, Name and Image are snapshots taken from
// the catalog when the item was first added; they are not re-synced when the
// catalog changes later.
type Item struct {
	ProductID uint   `json:"product"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"` // unit price in cents
	Name      string `json:"name"`
	Image     string `json:"image"`
	Size      Size   `json:"size"`
}

// Cart is the per-user cart document. A user owns at most one cart, items
// keep the order in which they were first added, and a cart holds at most
// one Item per product id.
type Cart struct {
	UserID    uint      `json:"user_id"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCart creates an empty cart for a user
func NewCart(userID uint) *Cart {
	now := time.Now().UTC()
	return &Cart{
		UserID:    userID,
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Total returns the cart total in cents
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// Count returns the total quantity across all items
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Find returns the item for a product id, or nil if the cart has none
func (c *Cart) Find(productID uint) *Item {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}
