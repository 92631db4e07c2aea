package notification

import "errors"

var (
	ErrUnknownChannel = errors.New("unknown notification channel")
	ErrUnknownEvent   = errors.New("unknown order event")
)
