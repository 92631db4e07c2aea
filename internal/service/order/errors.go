package order

import "errors"

var (
	ErrMissingRequiredFields = errors.New("name and email required")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrMissingProof          = errors.New("payment screenshot required")

	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrIDSpaceExhausted  = errors.New("could not allocate a unique order id")
)
