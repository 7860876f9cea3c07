// Package commands contains write-side use cases for the orders module.
package commands

import (
	"context"
	"fmt"

	"github.com/RobuxEmperium/robux-site/internal/platform/eventbus"
	"github.com/RobuxEmperium/robux-site/internal/platform/transaction"
	"github.com/RobuxEmperium/robux-site/modules/orders/domain"
	"github.com/RobuxEmperium/robux-site/modules/shared/events"
)

// PurchaseCommand places an order for one catalog package.
type PurchaseCommand struct {
	BuyerID   int64
	PackageID int64
}

// PurchaseHandler handles PurchaseCommand. The order row is committed
// first; the OrderPlaced event reaches subscribers only afterwards, so
// a notified seller can always read the order back.
type PurchaseHandler struct {
	repo    domain.OrderRepository
	catalog domain.Catalog
	scope   transaction.Scope
	sink    events.Publisher
}

func NewPurchaseHandler(
	repo domain.OrderRepository,
	catalog domain.Catalog,
	scope transaction.Scope,
	sink events.Publisher,
) *PurchaseHandler {
	return &PurchaseHandler{repo: repo, catalog: catalog, scope: scope, sink: sink}
}

// Handle places the order and returns its id.
func (h *PurchaseHandler) Handle(ctx context.Context, cmd PurchaseCommand) (int64, error) {
	return eventbus.AfterCommitWithResult(ctx, h.scope, h.sink,
		func(ctx context.Context, publisher events.Publisher) (int64, error) {
			pkg, err := h.catalog.PackageByID(ctx, cmd.PackageID)
			if err != nil {
				return 0, err
			}

			order := domain.PlaceOrder(cmd.BuyerID, pkg)
			if err := h.repo.Create(ctx, order); err != nil {
				return 0, fmt.Errorf("creating order: %w", err)
			}

			order.MarkPlaced(pkg.Name)
			if err := publisher.Publish(ctx, order.PopDomainEvents()...); err != nil {
				return 0, fmt.Errorf("staging order events: %w", err)
			}
			return order.ID(), nil
		})
}
