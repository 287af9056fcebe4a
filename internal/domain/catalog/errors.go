package catalog

import "errors"

// ErrProductNotFound is returned when a product id does not resolve
var ErrProductNotFound = errors.New("product not found")
