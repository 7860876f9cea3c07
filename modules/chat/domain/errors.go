package domain

import "errors"

var (
	// ErrContentRequired is returned when a message body is empty or
	// whitespace only.
	ErrContentRequired = errors.New("message content required")

	// ErrNotParticipant is returned when the caller is neither the
	// order's buyer nor a seller.
	ErrNotParticipant = errors.New("not a participant of this order")
)
