// Package queries contains read-side use cases for the chat module.
package queries

import (
	"context"

	"github.com/RobuxEmperium/robux-site/modules/chat/domain"
	"github.com/RobuxEmperium/robux-site/modules/identity"
)

// ListMessagesQuery returns an order's conversation, oldest first. The
// same participant rule as posting applies: the order's buyer or any
// seller.
type ListMessagesQuery struct {
	Actor   identity.Identity
	OrderID int64
}

// ListMessagesHandler handles ListMessagesQuery.
type ListMessagesHandler struct {
	repo   domain.MessageRepository
	orders domain.OrderDirectory
}

func NewListMessagesHandler(repo domain.MessageRepository, orders domain.OrderDirectory) *ListMessagesHandler {
	return &ListMessagesHandler{repo: repo, orders: orders}
}

func (h *ListMessagesHandler) Handle(ctx context.Context, q ListMessagesQuery) ([]domain.View, error) {
	buyerID, err := h.orders.BuyerOf(ctx, q.OrderID)
	if err != nil {
		return nil, err
	}
	if !q.Actor.IsSeller() && q.Actor.UserID != buyerID {
		return nil, domain.ErrNotParticipant
	}
	return h.repo.ListByOrder(ctx, q.OrderID)
}
