// internal/domain/wishlist/entity.go
package wishlist

import "time"

// Entry is one wishlist row. The composite unique index gives the wishlist
// set semantics at the store: inserting an existing (user, product) pair is
// a no-op.
type Entry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Entry) TableName() string {
	return "wishlist_entries"
}
