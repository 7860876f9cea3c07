// Package queries contains read-side use cases for the orders module.
package queries

import (
	"context"

	"github.com/RobuxEmperium/robux-site/modules/identity"
	"github.com/RobuxEmperium/robux-site/modules/orders/domain"
)

// ListOrdersQuery returns the orders the actor is allowed to see:
// sellers see every order, buyers only their own.
type ListOrdersQuery struct {
	Actor identity.Identity
}

// ListOrdersHandler handles ListOrdersQuery.
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

func (h *ListOrdersHandler) Handle(ctx context.Context, q ListOrdersQuery) ([]domain.Listing, error) {
	if q.Actor.IsSeller() {
		return h.repo.ListAll(ctx)
	}
	return h.repo.ListByBuyer(ctx, q.Actor.UserID)
}
