// Package domain contains business entities and rules for orders.
package domain

import (
	"time"

	shareddomain "github.com/RobuxEmperium/robux-site/modules/shared/domain"
)

// Order is the aggregate root for the order bounded context. An order is
// a purchase of one catalog package by one buyer. The price is copied
// from the package at purchase time and never recalculated, so later
// catalog changes do not rewrite existing orders.
type Order struct {
	shareddomain.AggregateRoot

	id               int64
	buyerID          int64
	packageID        int64
	price            int64
	status           Status
	paymentReference string
	createdAt        time.Time
}

// PackageSnapshot is the slice of a catalog entry an order captures at
// purchase time. Also the return type of the Catalog port.
type PackageSnapshot struct {
	ID    int64
	Name  string
	Price int64
}

// PlaceOrder creates a new pending order for the buyer, snapshotting the
// package price and generating a fresh payment reference. The id is zero
// until the repository persists the row.
func PlaceOrder(buyerID int64, pkg PackageSnapshot) *Order {
	return &Order{
		buyerID:          buyerID,
		packageID:        pkg.ID,
		price:            pkg.Price,
		status:           StatusPending,
		paymentReference: NewPaymentReference(),
		createdAt:        time.Now().UTC(),
	}
}

// Reconstitute rebuilds an order from persistence.
func Reconstitute(
	id, buyerID, packageID, price int64,
	status Status,
	paymentReference string,
	createdAt time.Time,
) *Order {
	return &Order{
		id:               id,
		buyerID:          buyerID,
		packageID:        packageID,
		price:            price,
		status:           status,
		paymentReference: paymentReference,
		createdAt:        createdAt,
	}
}

// AttachID records the storage-assigned id. Called by repositories once,
// after the row is inserted.
func (o *Order) AttachID(id int64) { o.id = id }

func (o *Order) ID() int64                { return o.id }
func (o *Order) BuyerID() int64           { return o.buyerID }
func (o *Order) PackageID() int64         { return o.packageID }
func (o *Order) Price() int64             { return o.price }
func (o *Order) Status() Status           { return o.status }
func (o *Order) PaymentReference() string { return o.paymentReference }
func (o *Order) CreatedAt() time.Time     { return o.createdAt }

// MarkPlaced records the OrderPlaced domain event. Called after the row
// is inserted, once the order has its id; the event is delivered to
// subscribers only after the surrounding transaction commits.
func (o *Order) MarkPlaced(packageName string) {
	o.AddDomainEvent(NewOrderPlacedEvent(o, packageName))
}

// SetStatus overwrites the order status. No transition table is
// enforced: the status column is a free-form label set by sellers.
func (o *Order) SetStatus(status Status) {
	o.status = status
}
