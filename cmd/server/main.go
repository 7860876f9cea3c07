// Package main is the entry point for the marketplace server.
// It wires together all modules and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/RobuxEmperium/robux-site/internal/platform/config"
	"github.com/RobuxEmperium/robux-site/internal/platform/httpserver"
	platformsqlite "github.com/RobuxEmperium/robux-site/internal/platform/sqlite"
	"github.com/RobuxEmperium/robux-site/internal/platform/transaction"
	"github.com/RobuxEmperium/robux-site/modules/catalog"
	catalogdomain "github.com/RobuxEmperium/robux-site/modules/catalog/domain"
	catalogpersistence "github.com/RobuxEmperium/robux-site/modules/catalog/infrastructure/persistence"
	"github.com/RobuxEmperium/robux-site/modules/chat"
	chatpersistence "github.com/RobuxEmperium/robux-site/modules/chat/infrastructure/persistence"
	"github.com/RobuxEmperium/robux-site/modules/identity"
	identitycommands "github.com/RobuxEmperium/robux-site/modules/identity/application/commands"
	identitypersistence "github.com/RobuxEmperium/robux-site/modules/identity/infrastructure/persistence"
	"github.com/RobuxEmperium/robux-site/modules/identity/infrastructure/session"
	"github.com/RobuxEmperium/robux-site/modules/orders"
	ordersdomain "github.com/RobuxEmperium/robux-site/modules/orders/domain"
	orderspersistence "github.com/RobuxEmperium/robux-site/modules/orders/infrastructure/persistence"
	"github.com/RobuxEmperium/robux-site/modules/realtime"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", slog.Any("error", err))
		os.Exit(1)
	}

	slogOptions := &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}
	slogJsonHandler := slog.NewJSONHandler(os.Stdout, slogOptions)
	logger := slog.New(slogJsonHandler)
	slog.SetDefault(logger)

	logger.Info("starting marketplace server")

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	// Initialize storage. Each module contributes its own DDL; the
	// combined script runs once per pooled connection and is idempotent.
	pool, err := platformsqlite.Open(platformsqlite.Config{
		Path:     cfg.Database.Path,
		PoolSize: cfg.Database.PoolSize,
		Logger:   logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, schema(), nil)
		},
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	scope := transaction.NewSQLiteScope(pool)
	sessions := session.NewStore(cfg.Session.TTL)

	// Initialize repositories
	userRepo := identitypersistence.NewSQLiteRepository(pool)
	packageRepo := catalogpersistence.NewSQLiteRepository(pool)
	orderRepo := orderspersistence.NewSQLiteRepository(pool)
	messageRepo := chatpersistence.NewSQLiteRepository(pool)

	// Initialize modules. The realtime module comes first: its event
	// sink is what the write-side modules publish committed events to.
	realtimeModule := realtime.New(realtime.Config{Logger: logger})

	identityModule := identity.New(identity.Config{
		Repository: userRepo,
		Sessions:   sessions,
	})

	catalogModule := catalog.New(catalog.Config{
		Repository: packageRepo,
	})

	ordersModule := orders.New(orders.Config{
		Repository: orderRepo,
		Catalog:    catalogDirectory{catalogModule},
		Scope:      scope,
		Publisher:  realtimeModule.EventSink(),
	})

	chatModule := chat.New(chat.Config{
		Repository: messageRepo,
		Orders:     ordersModule,
		Scope:      scope,
		Publisher:  realtimeModule.EventSink(),
	})

	// Seed the catalog and the configured seller accounts.
	if err := catalogModule.Seed(ctx); err != nil {
		return err
	}
	sellers := make([]identitycommands.SeedSellerAccount, 0, len(cfg.Seed.Sellers))
	for _, account := range cfg.Seed.Sellers {
		sellers = append(sellers, identitycommands.SeedSellerAccount{
			Email:    account.Email,
			Password: account.Password,
		})
	}
	if err := identityModule.SeedSellers(ctx, sellers); err != nil {
		return err
	}

	// Build HTTP router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	identityModule.RegisterRoutes(mux)
	catalogModule.RegisterRoutes(mux)
	ordersModule.RegisterRoutes(mux)
	chatModule.RegisterRoutes(mux)
	realtimeModule.RegisterRoutes(mux, ordersModule)

	// Apply middleware
	handler := httpserver.Middleware(mux,
		httpserver.Recovery(logger),
		httpserver.Logging(logger),
		httpserver.CORS([]string{"*"}),
		identityModule.Authenticate(),
	)

	// Create and start server
	serverCfg := httpserver.DefaultConfig()
	serverCfg.Host = cfg.Server.Host
	serverCfg.Port = cfg.Server.Port
	server := httpserver.New(serverCfg, handler, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// schema concatenates every module's DDL.
func schema() string {
	return identitypersistence.Schema +
		catalogpersistence.Schema +
		orderspersistence.Schema +
		chatpersistence.Schema
}

// catalogDirectory adapts the catalog module to the Catalog port of the
// orders module, translating its not-found error to the one the orders
// domain expects.
type catalogDirectory struct {
	catalog catalog.Module
}

func (d catalogDirectory) PackageByID(ctx context.Context, id int64) (ordersdomain.PackageSnapshot, error) {
	pkg, err := d.catalog.Lookup(ctx, id)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrPackageNotFound) {
			return ordersdomain.PackageSnapshot{}, ordersdomain.ErrInvalidPackage
		}
		return ordersdomain.PackageSnapshot{}, err
	}
	return ordersdomain.PackageSnapshot{ID: pkg.ID, Name: pkg.Name, Price: pkg.Price}, nil
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
