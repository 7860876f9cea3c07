// Package identity: module wiring. This file defines the module's public
// API - the interface other parts of the server use to interact with the
// identity bounded context.
package identity

import (
	"context"
	"net/http"

	"github.com/RobuxEmperium/robux-site/internal/platform/httpserver"
	"github.com/RobuxEmperium/robux-site/modules/identity/application/commands"
	"github.com/RobuxEmperium/robux-site/modules/identity/domain"
	"github.com/RobuxEmperium/robux-site/modules/identity/infrastructure/crypto"
	httphandler "github.com/RobuxEmperium/robux-site/modules/identity/infrastructure/http"
	"github.com/RobuxEmperium/robux-site/modules/identity/infrastructure/session"
)

// Module is the public API for the identity bounded context.
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)

	// Authenticate returns the middleware that resolves the session
	// cookie into a request Identity. Applied once, around the whole
	// router.
	Authenticate() httpserver.MiddlewareFunc

	// SeedSellers ensures the configured seller accounts exist.
	SeedSellers(ctx context.Context, accounts []commands.SeedSellerAccount) error
}

// Config holds the module configuration.
type Config struct {
	Repository domain.UserRepository
	Hasher     crypto.PasswordHasher
	Sessions   *session.Store
}

type module struct {
	registerUserHandler *commands.RegisterUserHandler
	loginHandler        *commands.LoginHandler
	seedSellersHandler  *commands.SeedSellersHandler
	sessions            *session.Store
}

// New creates a new identity module with all dependencies wired.
func New(cfg Config) Module {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = crypto.NewArgon2Hasher(nil)
	}

	return &module{
		registerUserHandler: commands.NewRegisterUserHandler(cfg.Repository, hasher),
		loginHandler:        commands.NewLoginHandler(cfg.Repository, hasher, cfg.Sessions),
		seedSellersHandler:  commands.NewSeedSellersHandler(cfg.Repository, hasher),
		sessions:            cfg.Sessions,
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.registerUserHandler, m.loginHandler, m.sessions)
}

func (m *module) Authenticate() httpserver.MiddlewareFunc {
	return httphandler.Authenticate(m.sessions)
}

func (m *module) SeedSellers(ctx context.Context, accounts []commands.SeedSellerAccount) error {
	return m.seedSellersHandler.Handle(ctx, accounts)
}
