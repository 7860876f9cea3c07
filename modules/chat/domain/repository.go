package domain

import "context"

// MessageRepository defines persistence for chat messages.
type MessageRepository interface {
	// Create persists a new message and attaches the storage-assigned id.
	Create(ctx context.Context, message *Message) error

	// ListByOrder returns the order's conversation oldest first, with
	// author emails resolved.
	ListByOrder(ctx context.Context, orderID int64) ([]View, error)
}

// OrderDirectory is the port through which chat resolves order
// ownership for participant checks. The concrete adapter wraps the
// orders module in the composition root. Implementations return the
// orders module's not-found error for unknown ids.
type OrderDirectory interface {
	BuyerOf(ctx context.Context, orderID int64) (int64, error)
}
