package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidQuantity is returned when a product would be built or merged with a non-positive quantity.
var ErrInvalidQuantity = errors.New("product quantity must be positive")

// ErrZeroQuantityProduct is returned when a category or order is offered a product with nothing in stock.
// It wraps ErrInvalidQuantity so callers can match either name.
var ErrZeroQuantityProduct = fmt.Errorf("%w: zero-quantity product cannot be admitted", ErrInvalidQuantity)

// ErrTypeMismatch is returned when an operand is not a catalog item or the item kinds are incompatible.
var ErrTypeMismatch = errors.New("catalog item type mismatch")

// ErrInvalidPrice describes a price that is not a finite number, or a non-positive update.
// Construction and ingestion return it for NaN or infinite prices; the setter only logs it.
var ErrInvalidPrice = errors.New("price must be a positive finite number")
