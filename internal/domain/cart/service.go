// internal/domain/cart/service.go
package cart

import (
	"context"

	"github.com/sirupsen/logrus"
)

// ProductDetails are the live catalog fields joined into cart responses
type ProductDetails struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image"`
	Stock int    `json:"stock"`
}

// Catalog resolves product ids to their current catalog record. Resolve
// returns ErrProductNotFound when the id does not exist.
type Catalog interface {
	Resolve(ctx context.Context, productID uint) (*ProductDetails, error)
}

// ItemResponse is a cart line with the live catalog record joined beside the
// stored snapshot. Product is nil when the catalog record no longer resolves.
type ItemResponse struct {
	Product  *ProductDetails `json:"product"`
	Quantity int             `json:"quantity"`
	Price    int64           `json:"price"`
	Name     string          `json:"name"`
	Image    string          `json:"image"`
	Size     Size            `json:"size"`
}

// AddItemRequest represents an add-to-cart request
type AddItemRequest struct {
	ProductID uint `json:"product" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
	Size      Size `json:"size"`
}

// UpdateQuantityRequest represents a cart item quantity update
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// Service owns cart aggregation: idempotent item merging, quantity
// aggregation and catalog snapshotting.
type Service struct {
	store   Store
	catalog Catalog
	log     *logrus.Entry
}

// NewService creates a new cart service
func NewService(store Store, catalog Catalog, log *logrus.Entry) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		log:     log,
	}
}

// GetCart returns the user's cart items with live catalog fields joined.
// A user with no stored cart gets an empty one created and persisted.
func (s *Service) GetCart(ctx context.Context, userID uint) ([]ItemResponse, error) {
	c, ok, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !ok {
		c, err = s.store.Mutate(ctx, userID, func(*Cart) error { return nil })
		if err != nil {
			return nil, err
		}
		s.log.WithField("user_id", userID).Debug("created empty cart")
	}

	return s.joinLive(ctx, c.Items), nil
}

// AddItem merges a product into the user's cart. Adding a product already in
// the cart increments its quantity; a new product is appended with the
// current catalog price, name and image snapshotted. Returns the item list
// with live catalog fields joined.
func (s *Service) AddItem(ctx context.Context, userID uint, req *AddItemRequest) ([]ItemResponse, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	size := req.Size
	if size == "" {
		size = DefaultSize
	}
	if !size.Valid() {
		return nil, ErrInvalidSize
	}

	// Resolve before mutating so a missing product leaves the cart untouched
	details, err := s.catalog.Resolve(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	c, err := s.store.Mutate(ctx, userID, func(c *Cart) error {
		if item := c.Find(req.ProductID); item != nil {
			item.Quantity += req.Quantity
			return nil
		}

		image := details.Image
		if image == "" {
			image = PlaceholderImage
		}
		c.Items = append(c.Items, Item{
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			Price:     details.Price,
			Name:      details.Name,
			Image:     image,
			Size:      size,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":    userID,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	}).Info("item added to cart")

	return s.joinLive(ctx, c.Items), nil
}

// UpdateQuantity sets the quantity of an existing cart item verbatim and
// returns the snapshot item list. Fails with ErrCartNotFound or
// ErrItemNotFound when the cart or the item is absent.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID uint, quantity int) ([]Item, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	if _, ok, err := s.store.Load(ctx, userID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrCartNotFound
	}

	c, err := s.store.Mutate(ctx, userID, func(c *Cart) error {
		item := c.Find(productID)
		if item == nil {
			return ErrItemNotFound
		}
		item.Quantity = quantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.Items, nil
}

// RemoveItem filters the product out of the user's cart. Removing a product
// the cart does not contain is a silent no-op. Returns the remaining items.
func (s *Service) RemoveItem(ctx context.Context, userID, productID uint) ([]Item, error) {
	if _, ok, err := s.store.Load(ctx, userID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrCartNotFound
	}

	c, err := s.store.Mutate(ctx, userID, func(c *Cart) error {
		kept := c.Items[:0]
		for _, item := range c.Items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		c.Items = kept
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.Items, nil
}

// Clear empties the user's cart. Idempotent: clearing an absent or already
// empty cart persists an empty item list.
func (s *Service) Clear(ctx context.Context, userID uint) error {
	_, err := s.store.Mutate(ctx, userID, func(c *Cart) error {
		c.Items = []Item{}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithField("user_id", userID).Info("cart cleared")
	return nil
}

// joinLive attaches the current catalog record to each item. Items whose
// product no longer resolves keep their snapshot and a nil Product.
func (s *Service) joinLive(ctx context.Context, items []Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i, item := range items {
		responses[i] = ItemResponse{
			Quantity: item.Quantity,
			Price:    item.Price,
			Name:     item.Name,
			Image:    item.Image,
			Size:     item.Size,
		}

		details, err := s.catalog.Resolve(ctx, item.ProductID)
		if err != nil {
			continue
		}
		responses[i].Product = details
	}
	return responses
}
