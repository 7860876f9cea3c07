// Package catalog provides the read-only package catalog.
package catalog

import (
	"context"
	"net/http"

	"github.com/RobuxEmperium/robux-site/modules/catalog/application/queries"
	"github.com/RobuxEmperium/robux-site/modules/catalog/domain"
	httphandler "github.com/RobuxEmperium/robux-site/modules/catalog/infrastructure/http"
)

// Module is the public API for the catalog bounded context.
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)

	// Lookup resolves a package id to its catalog entry.
	// Returns domain.ErrPackageNotFound for unknown ids.
	Lookup(ctx context.Context, id int64) (domain.Package, error)

	// Seed populates the catalog with the default packages if empty.
	Seed(ctx context.Context) error
}

// Config holds the module configuration.
type Config struct {
	Repository domain.PackageRepository
}

type module struct {
	repo         domain.PackageRepository
	listPackages *queries.ListPackagesHandler
}

// New creates a new catalog module with all dependencies wired.
func New(cfg Config) Module {
	return &module{
		repo:         cfg.Repository,
		listPackages: queries.NewListPackagesHandler(cfg.Repository),
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.listPackages)
}

func (m *module) Lookup(ctx context.Context, id int64) (domain.Package, error) {
	return m.repo.FindByID(ctx, id)
}

func (m *module) Seed(ctx context.Context) error {
	return m.repo.Seed(ctx, domain.DefaultCatalog())
}
