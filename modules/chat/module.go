// Package chat: module wiring. This file defines the module's public
// API - the interface other parts of the server use to interact with the
// chat bounded context.
package chat

import (
	"net/http"

	"github.com/RobuxEmperium/robux-site/internal/platform/transaction"
	"github.com/RobuxEmperium/robux-site/modules/chat/application/commands"
	"github.com/RobuxEmperium/robux-site/modules/chat/application/queries"
	"github.com/RobuxEmperium/robux-site/modules/chat/domain"
	httphandler "github.com/RobuxEmperium/robux-site/modules/chat/infrastructure/http"
	"github.com/RobuxEmperium/robux-site/modules/shared/events"
)

// Module is the public API for the chat bounded context.
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)
}

// Config holds the module configuration.
type Config struct {
	Repository domain.MessageRepository
	Orders     domain.OrderDirectory
	Scope      transaction.Scope
	Publisher  events.Publisher
}

type module struct {
	postMessageHandler  *commands.PostMessageHandler
	listMessagesHandler *queries.ListMessagesHandler
}

// New creates a new chat module with all dependencies wired.
func New(cfg Config) Module {
	return &module{
		postMessageHandler:  commands.NewPostMessageHandler(cfg.Repository, cfg.Orders, cfg.Scope, cfg.Publisher),
		listMessagesHandler: queries.NewListMessagesHandler(cfg.Repository, cfg.Orders),
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.postMessageHandler, m.listMessagesHandler)
}
