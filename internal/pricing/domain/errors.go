package domain

import "errors"

// ErrProductNotFound is returned when the referenced product does not exist.
var ErrProductNotFound = errors.New("product not found")

// ErrInsufficientStock is returned when a sale requests more units than are
// on hand. The store is left untouched.
var ErrInsufficientStock = errors.New("not enough stock")

// ErrInvalidQuantity is returned for non-positive sale quantities.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// ErrInvalidPrice is returned when a price override is negative.
var ErrInvalidPrice = errors.New("price cannot be negative")
