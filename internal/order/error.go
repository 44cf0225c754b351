package order

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrNoLineItems     = errors.New("order has no line items")
	ErrInvalidQuantity = errors.New("line item quantity must be positive")
	ErrUnknownProduct  = errors.New("unknown product in order")
	ErrUnknownSize     = errors.New("unknown size for product")
	ErrTotalMismatch   = errors.New("total amount does not match catalog prices")
	ErrInvalidStatus   = errors.New("invalid order status")
)
