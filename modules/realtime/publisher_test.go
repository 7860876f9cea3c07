package realtime_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/RobuxEmperium/robux-site/modules/realtime"
	"github.com/RobuxEmperium/robux-site/modules/realtime/hub"
	"github.com/RobuxEmperium/robux-site/modules/shared/events"
	"github.com/RobuxEmperium/robux-site/modules/shared/events/contracts"
)

type fakeSubscriber struct {
	received [][]byte
}

func (s *fakeSubscriber) Deliver(payload []byte) bool {
	s.received = append(s.received, payload)
	return true
}

func (s *fakeSubscriber) Close() {}

func TestBroadcaster_Publish_OrderPlacedGoesToAdmin(t *testing.T) {
	h := hub.New(nil)
	admin := &fakeSubscriber{}
	bystander := &fakeSubscriber{}
	h.Join(hub.GroupAdmin, admin)
	h.Join(hub.OrderGroup(5), bystander)

	b := realtime.NewBroadcaster(h, nil)

	err := b.Publish(context.Background(), contracts.NewOrderPlacedEvent(5, 2, "800 Robux", 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(admin.received) != 1 {
		t.Fatalf("expected 1 admin payload, got %d", len(admin.received))
	}
	if len(bystander.received) != 0 {
		t.Errorf("order group must not receive new_order payloads, got %d", len(bystander.received))
	}

	var payload struct {
		Type    string `json:"type"`
		OrderID int64  `json:"orderId"`
		Package string `json:"package"`
		Price   int64  `json:"price"`
	}
	if err := json.Unmarshal(admin.received[0], &payload); err != nil {
		t.Fatalf("unmarshaling payload: %v", err)
	}
	if payload.Type != "new_order" || payload.OrderID != 5 || payload.Package != "800 Robux" || payload.Price != 15 {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestBroadcaster_Publish_MessageGoesToOrderGroup(t *testing.T) {
	h := hub.New(nil)
	admin := &fakeSubscriber{}
	participant := &fakeSubscriber{}
	h.Join(hub.GroupAdmin, admin)
	h.Join(hub.OrderGroup(9), participant)

	b := realtime.NewBroadcaster(h, nil)

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	err := b.Publish(context.Background(),
		contracts.NewMessagePostedEvent(55, 9, "buyer@example.com", "hello", createdAt))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(participant.received) != 1 {
		t.Fatalf("expected 1 order-group payload, got %d", len(participant.received))
	}
	if len(admin.received) != 0 {
		t.Errorf("admin group must not receive chat payloads, got %d", len(admin.received))
	}

	var payload struct {
		Type    string `json:"type"`
		OrderID int64  `json:"orderId"`
		Author  string `json:"author"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(participant.received[0], &payload); err != nil {
		t.Fatalf("unmarshaling payload: %v", err)
	}
	if payload.Type != "message" || payload.OrderID != 9 || payload.Author != "buyer@example.com" || payload.Content != "hello" {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestBroadcaster_Publish_IgnoresUnknownEvents(t *testing.T) {
	h := hub.New(nil)
	admin := &fakeSubscriber{}
	h.Join(hub.GroupAdmin, admin)

	b := realtime.NewBroadcaster(h, nil)

	unknown := struct{ events.BaseEvent }{events.NewBaseEvent("something.Else", "1")}
	if err := b.Publish(context.Background(), unknown); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(admin.received) != 0 {
		t.Errorf("expected no deliveries for unknown events, got %d", len(admin.received))
	}
}
