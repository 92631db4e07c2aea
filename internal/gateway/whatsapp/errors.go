package whatsapp

import "errors"

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrRejected         = errors.New("message rejected by gateway")
)
