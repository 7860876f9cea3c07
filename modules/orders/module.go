// Package orders: module wiring. This file defines the module's public
// API - the interface other parts of the server use to interact with the
// orders bounded context.
package orders

import (
	"context"
	"net/http"

	"github.com/RobuxEmperium/robux-site/internal/platform/transaction"
	"github.com/RobuxEmperium/robux-site/modules/orders/application/commands"
	"github.com/RobuxEmperium/robux-site/modules/orders/application/queries"
	"github.com/RobuxEmperium/robux-site/modules/orders/domain"
	httphandler "github.com/RobuxEmperium/robux-site/modules/orders/infrastructure/http"
	"github.com/RobuxEmperium/robux-site/modules/shared/events"
)

// Module is the public API for the orders bounded context.
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)

	// BuyerOf returns the buyer id of the given order, or
	// domain.ErrOrderNotFound. Used by the chat and realtime modules for
	// participant checks.
	BuyerOf(ctx context.Context, orderID int64) (int64, error)
}

// Config holds the module configuration.
type Config struct {
	Repository domain.OrderRepository
	Catalog    domain.Catalog
	Scope      transaction.Scope
	Publisher  events.Publisher
}

type module struct {
	purchaseHandler   *commands.PurchaseHandler
	setStatusHandler  *commands.SetStatusHandler
	listOrdersHandler *queries.ListOrdersHandler
	repo              domain.OrderRepository
}

// New creates a new orders module with all dependencies wired.
func New(cfg Config) Module {
	return &module{
		purchaseHandler:   commands.NewPurchaseHandler(cfg.Repository, cfg.Catalog, cfg.Scope, cfg.Publisher),
		setStatusHandler:  commands.NewSetStatusHandler(cfg.Repository),
		listOrdersHandler: queries.NewListOrdersHandler(cfg.Repository),
		repo:              cfg.Repository,
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.purchaseHandler, m.setStatusHandler, m.listOrdersHandler)
}

func (m *module) BuyerOf(ctx context.Context, orderID int64) (int64, error) {
	order, err := m.repo.FindByID(ctx, orderID)
	if err != nil {
		return 0, err
	}
	return order.BuyerID(), nil
}
