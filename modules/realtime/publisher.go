package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/RobuxEmperium/robux-site/modules/realtime/hub"
	"github.com/RobuxEmperium/robux-site/modules/shared/events"
	"github.com/RobuxEmperium/robux-site/modules/shared/events/contracts"
)

// Broadcaster translates domain events into hub payloads: OrderPlaced
// fans out to the admin group, MessagePosted to the order's group.
// Events it does not recognize are ignored. It sits behind the staged
// event bus, so subscribers only ever see committed state.
type Broadcaster struct {
	hub    *hub.Hub
	logger *slog.Logger
}

var _ events.Publisher = (*Broadcaster)(nil)

func NewBroadcaster(h *hub.Hub, logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{hub: h, logger: logger}
}

type newOrderPayload struct {
	Type    string `json:"type"`
	OrderID int64  `json:"orderId"`
	Package string `json:"package"`
	Price   int64  `json:"price"`
}

type messagePayload struct {
	Type      string    `json:"type"`
	OrderID   int64     `json:"orderId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *Broadcaster) Publish(_ context.Context, evts ...events.Event) error {
	for _, event := range evts {
		switch e := event.(type) {
		case contracts.OrderPlacedEvent:
			b.broadcast(hub.GroupAdmin, newOrderPayload{
				Type:    "new_order",
				OrderID: e.OrderID,
				Package: e.PackageName,
				Price:   e.Price,
			})

		case contracts.MessagePostedEvent:
			b.broadcast(hub.OrderGroup(e.OrderID), messagePayload{
				Type:      "message",
				OrderID:   e.OrderID,
				Author:    e.Author,
				Content:   e.Content,
				CreatedAt: e.CreatedAt,
			})

		default:
			b.logger.Debug("no broadcast mapping for event", "event_type", string(event.EventType()))
		}
	}
	return nil
}

func (b *Broadcaster) broadcast(group hub.Group, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("marshaling broadcast payload", "error", fmt.Errorf("group %s: %w", group, err))
		return
	}
	b.hub.Publish(group, raw)
}
