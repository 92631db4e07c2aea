package smtp

import "errors"

var (
	ErrInvalidSender    = errors.New("invalid sender address")
	ErrInvalidRecipient = errors.New("invalid recipient address")
)
