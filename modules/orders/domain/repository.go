package domain

import (
	"context"
	"time"
)

// Listing is the read-model row returned by order listings. BuyerEmail
// is populated only for the seller view; buyers already know who they
// are.
type Listing struct {
	ID               int64     `json:"id"`
	BuyerID          int64     `json:"buyer_id"`
	BuyerEmail       string    `json:"buyer_email,omitempty"`
	PackageID        int64     `json:"package_id"`
	PackageName      string    `json:"package"`
	Price            int64     `json:"price"`
	Status           Status    `json:"status"`
	PaymentReference string    `json:"payment_reference"`
	CreatedAt        time.Time `json:"created_at"`
}

// OrderRepository defines persistence for orders.
type OrderRepository interface {
	// Create persists a new order and attaches the storage-assigned id.
	Create(ctx context.Context, order *Order) error

	// FindByID returns the order or ErrOrderNotFound.
	FindByID(ctx context.Context, id int64) (*Order, error)

	// UpdateStatus overwrites the status of an existing order. Returns
	// ErrOrderNotFound if no row matches.
	UpdateStatus(ctx context.Context, id int64, status Status) error

	// ListAll returns every order, newest first, with buyer email and
	// package name resolved.
	ListAll(ctx context.Context) ([]Listing, error)

	// ListByBuyer returns the buyer's own orders, newest first.
	ListByBuyer(ctx context.Context, buyerID int64) ([]Listing, error)
}

// Catalog is the port through which orders resolve packages. The
// concrete adapter lives in the composition root so this module does
// not import the catalog module directly. Implementations return
// ErrInvalidPackage for unknown ids.
type Catalog interface {
	PackageByID(ctx context.Context, id int64) (PackageSnapshot, error)
}
