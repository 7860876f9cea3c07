// Package contracts defines public event contracts for inter-module communication.
// Modules should import event types from here, NOT from other module's domain packages.
package contracts

import (
	"strconv"

	"github.com/RobuxEmperium/robux-site/modules/shared/events"
)

const (
	OrderPlacedEventType events.EventType = "orders.OrderPlaced"
)

// OrderPlacedEvent is published after a purchase has durably committed.
// The realtime module fans it out to the seller admin feed.
type OrderPlacedEvent struct {
	events.BaseEvent
	OrderID     int64  `json:"order_id"`
	BuyerID     int64  `json:"buyer_id"`
	PackageName string `json:"package_name"`
	Price       int64  `json:"price"`
}

func NewOrderPlacedEvent(orderID, buyerID int64, packageName string, price int64) OrderPlacedEvent {
	return OrderPlacedEvent{
		BaseEvent:   events.NewBaseEvent(OrderPlacedEventType, strconv.FormatInt(orderID, 10)),
		OrderID:     orderID,
		BuyerID:     buyerID,
		PackageName: packageName,
		Price:       price,
	}
}
