package hub_test

import (
	"testing"

	"github.com/RobuxEmperium/robux-site/modules/realtime/hub"
)

// fakeSubscriber records deliveries; setting full simulates a stalled
// consumer.
type fakeSubscriber struct {
	received [][]byte
	full     bool
	closed   bool
}

func (s *fakeSubscriber) Deliver(payload []byte) bool {
	if s.full {
		return false
	}
	s.received = append(s.received, payload)
	return true
}

func (s *fakeSubscriber) Close() {
	s.closed = true
}

func TestHub_Publish_TargetsOnlyGroupMembers(t *testing.T) {
	h := hub.New(nil)
	admin := &fakeSubscriber{}
	orderNine := &fakeSubscriber{}
	orderTen := &fakeSubscriber{}

	h.Join(hub.GroupAdmin, admin)
	h.Join(hub.OrderGroup(9), orderNine)
	h.Join(hub.OrderGroup(10), orderTen)

	h.Publish(hub.OrderGroup(9), []byte("hello"))

	if len(orderNine.received) != 1 {
		t.Errorf("expected order 9 subscriber to receive 1 payload, got %d", len(orderNine.received))
	}
	if len(orderTen.received) != 0 {
		t.Errorf("expected order 10 subscriber to receive nothing, got %d", len(orderTen.received))
	}
	if len(admin.received) != 0 {
		t.Errorf("expected admin subscriber to receive nothing, got %d", len(admin.received))
	}
}

func TestHub_Join_Idempotent(t *testing.T) {
	h := hub.New(nil)
	sub := &fakeSubscriber{}

	h.Join(hub.GroupAdmin, sub)
	h.Join(hub.GroupAdmin, sub)

	h.Publish(hub.GroupAdmin, []byte("once"))

	if len(sub.received) != 1 {
		t.Errorf("expected a double join to deliver once, got %d", len(sub.received))
	}
	if h.MemberCount(hub.GroupAdmin) != 1 {
		t.Errorf("expected 1 member, got %d", h.MemberCount(hub.GroupAdmin))
	}
}

func TestHub_Publish_NoBacklog(t *testing.T) {
	h := hub.New(nil)

	h.Publish(hub.GroupAdmin, []byte("before join"))

	late := &fakeSubscriber{}
	h.Join(hub.GroupAdmin, late)

	if len(late.received) != 0 {
		t.Errorf("expected no replay of earlier payloads, got %d", len(late.received))
	}
}

func TestHub_Publish_EmptyGroupIsNoop(t *testing.T) {
	h := hub.New(nil)

	// Must not panic or block.
	h.Publish(hub.OrderGroup(123), []byte("nobody home"))
}

func TestHub_Drop_RemovesFromAllGroups(t *testing.T) {
	h := hub.New(nil)
	sub := &fakeSubscriber{}

	h.Join(hub.GroupAdmin, sub)
	h.Join(hub.OrderGroup(9), sub)

	h.Drop(sub)

	h.Publish(hub.GroupAdmin, []byte("a"))
	h.Publish(hub.OrderGroup(9), []byte("b"))

	if len(sub.received) != 0 {
		t.Errorf("expected no deliveries after drop, got %d", len(sub.received))
	}
	if h.MemberCount(hub.GroupAdmin) != 0 || h.MemberCount(hub.OrderGroup(9)) != 0 {
		t.Error("expected empty groups after drop")
	}
}

func TestHub_Publish_DropsSlowSubscriber(t *testing.T) {
	h := hub.New(nil)
	slow := &fakeSubscriber{full: true}
	healthy := &fakeSubscriber{}

	h.Join(hub.GroupAdmin, slow)
	h.Join(hub.GroupAdmin, healthy)

	h.Publish(hub.GroupAdmin, []byte("x"))

	if h.MemberCount(hub.GroupAdmin) != 1 {
		t.Errorf("expected slow subscriber to be dropped, members: %d", h.MemberCount(hub.GroupAdmin))
	}
	if !slow.closed {
		t.Error("expected the dropped subscriber to be closed")
	}
	if len(healthy.received) != 1 {
		t.Errorf("expected healthy subscriber to still receive, got %d", len(healthy.received))
	}
	if healthy.closed {
		t.Error("healthy subscriber must stay open")
	}
}

func TestOrderGroup(t *testing.T) {
	if hub.OrderGroup(42) != hub.Group("order:42") {
		t.Errorf("unexpected group name: %s", hub.OrderGroup(42))
	}
	if hub.OrderGroup(1) == hub.GroupAdmin {
		t.Error("order groups must not collide with the admin group")
	}
}
