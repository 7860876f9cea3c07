package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/RobuxEmperium/robux-site/modules/catalog/domain"
)

// InMemoryRepository implements PackageRepository using in-memory storage.
// Useful for testing and development.
type InMemoryRepository struct {
	mu       sync.RWMutex
	packages map[int64]domain.Package
	nextID   int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		packages: make(map[int64]domain.Package),
		nextID:   1,
	}
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id int64) (domain.Package, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pkg, exists := r.packages[id]
	if !exists {
		return domain.Package{}, domain.ErrPackageNotFound
	}
	return pkg, nil
}

func (r *InMemoryRepository) FindAll(ctx context.Context) ([]domain.Package, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	packages := make([]domain.Package, 0, len(r.packages))
	for _, pkg := range r.packages {
		packages = append(packages, pkg)
	}
	sort.Slice(packages, func(i, j int) bool { return packages[i].ID < packages[j].ID })
	return packages, nil
}

func (r *InMemoryRepository) Seed(ctx context.Context, packages []domain.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.packages) > 0 {
		return nil
	}
	for _, pkg := range packages {
		pkg.ID = r.nextID
		r.packages[r.nextID] = pkg
		r.nextID++
	}
	return nil
}

// Compile-time interface check.
var _ domain.PackageRepository = (*InMemoryRepository)(nil)
