package order

import "errors"

var (
	ErrEmptyOrder    = errors.New("order has no items")
	ErrMalformedItem = errors.New("malformed order item")
)
