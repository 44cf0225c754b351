package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid product category")
	ErrTooManyImages   = errors.New("maximum 5 images allowed")
	ErrNoSizes         = errors.New("product needs at least one size")
)
