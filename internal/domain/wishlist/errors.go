package wishlist

import "errors"

// ErrProductNotFound is returned when the product id does not resolve
var ErrProductNotFound = errors.New("product not found")
