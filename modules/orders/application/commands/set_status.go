package commands

import (
	"context"

	"github.com/RobuxEmperium/robux-site/modules/identity"
	"github.com/RobuxEmperium/robux-site/modules/orders/domain"
)

// SetStatusCommand overwrites an order's status label. Seller-only.
// Deliberately no event and no notification: status changes are pulled
// by clients on their next listing, not pushed.
type SetStatusCommand struct {
	Actor   identity.Identity
	OrderID int64
	Status  domain.Status
}

// SetStatusHandler handles SetStatusCommand.
type SetStatusHandler struct {
	repo domain.OrderRepository
}

func NewSetStatusHandler(repo domain.OrderRepository) *SetStatusHandler {
	return &SetStatusHandler{repo: repo}
}

func (h *SetStatusHandler) Handle(ctx context.Context, cmd SetStatusCommand) error {
	if !cmd.Actor.IsSeller() {
		return domain.ErrSellerRoleRequired
	}
	return h.repo.UpdateStatus(ctx, cmd.OrderID, cmd.Status)
}
