// Package queries contains read use cases for the catalog module.
package queries

import (
	"context"

	"github.com/RobuxEmperium/robux-site/modules/catalog/domain"
)

// ListPackagesHandler returns the full catalog.
type ListPackagesHandler struct {
	repo domain.PackageRepository
}

func NewListPackagesHandler(repo domain.PackageRepository) *ListPackagesHandler {
	return &ListPackagesHandler{repo: repo}
}

func (h *ListPackagesHandler) Handle(ctx context.Context) ([]domain.Package, error) {
	return h.repo.FindAll(ctx)
}
