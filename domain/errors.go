package domain

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductUnavailable  = errors.New("product is not available")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryExists      = errors.New("category already exists")
	ErrCategoryNameEmpty   = errors.New("category name is required")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidActivityType = errors.New("invalid activity type")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
)
