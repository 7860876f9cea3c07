package domain

import "context"

// PackageRepository defines the persistence interface for catalog entries.
type PackageRepository interface {
	// FindByID retrieves a package by id.
	// Returns ErrPackageNotFound if the package doesn't exist.
	FindByID(ctx context.Context, id int64) (Package, error)

	// FindAll retrieves the whole catalog, ordered by id.
	FindAll(ctx context.Context) ([]Package, error)

	// Seed inserts the given packages if the catalog is empty.
	Seed(ctx context.Context, packages []Package) error
}
