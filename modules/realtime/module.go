// Package realtime: module wiring. The realtime bounded context owns the
// notification hub and its websocket transport; other modules reach it
// only through the shared event contracts.
package realtime

import (
	"log/slog"
	"net/http"

	"github.com/RobuxEmperium/robux-site/modules/realtime/hub"
	"github.com/RobuxEmperium/robux-site/modules/realtime/infrastructure/ws"
	"github.com/RobuxEmperium/robux-site/modules/shared/events"
)

// Module is the public API for the realtime bounded context.
type Module interface {
	// RegisterRoutes registers the websocket endpoint to the given mux.
	// The order directory authorizes join_order requests; it is passed
	// here rather than at construction because the orders module is
	// built after this one (it needs EventSink).
	RegisterRoutes(mux *http.ServeMux, orders ws.OrderDirectory)

	// EventSink returns the publisher that fans committed domain events
	// out to connected clients. Wire it as the staged event bus sink.
	EventSink() events.Publisher
}

// Config holds the module configuration.
type Config struct {
	Logger *slog.Logger
}

type module struct {
	hub         *hub.Hub
	broadcaster *Broadcaster
	logger      *slog.Logger
}

// New creates a new realtime module with all dependencies wired.
func New(cfg Config) Module {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	h := hub.New(logger)

	return &module{
		hub:         h,
		broadcaster: NewBroadcaster(h, logger),
		logger:      logger,
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux, orders ws.OrderDirectory) {
	ws.RegisterRoutes(mux, m.hub, orders, m.logger)
}

func (m *module) EventSink() events.Publisher {
	return m.broadcaster
}
