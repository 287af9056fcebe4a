package cart

import "errors"

// Sentinel errors surfaced to HTTP handlers
var (
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidSize     = errors.New("invalid size")
)
