package domain

import "github.com/RobuxEmperium/robux-site/modules/shared/events/contracts"

// NewOrderPlacedEvent builds the public contract event for a freshly
// persisted order. The order must already have its id attached.
func NewOrderPlacedEvent(o *Order, packageName string) contracts.OrderPlacedEvent {
	return contracts.NewOrderPlacedEvent(o.ID(), o.BuyerID(), packageName, o.Price())
}
