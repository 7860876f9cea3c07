// Package hub implements the in-process fan-out for realtime
// notifications. Subscribers join named groups; publishing to a group
// delivers the payload to every current member and nobody else. There
// is no backlog: a subscriber only sees what is published while it is
// joined.
package hub

import (
	"fmt"
	"log/slog"
	"sync"
)

// Group names a fan-out target.
type Group string

// GroupAdmin receives storefront-wide events meant for sellers.
const GroupAdmin Group = "admin"

// OrderGroup returns the group carrying one order's conversation.
func OrderGroup(orderID int64) Group {
	return Group(fmt.Sprintf("order:%d", orderID))
}

// Subscriber receives published payloads. Deliver must not block; it
// returns false when the subscriber can no longer keep up, at which
// point the hub drops it from every group and calls Close so the
// transport can tear the connection down. Close must be idempotent.
type Subscriber interface {
	Deliver(payload []byte) bool
	Close()
}

// Hub is the subscription registry plus fan-out. Safe for concurrent
// use.
type Hub struct {
	mu       sync.RWMutex
	registry *subscriptionRegistry
	logger   *slog.Logger
}

func New(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		registry: newSubscriptionRegistry(),
		logger:   logger,
	}
}

// Join adds the subscriber to the group. Idempotent.
func (h *Hub) Join(group Group, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.registry.join(group, sub)
}

// Drop removes the subscriber from every group. Called on disconnect.
func (h *Hub) Drop(sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.registry.drop(sub)
}

// Publish delivers the payload to every current member of the group.
// Fire and forget: publishing to an empty group is a no-op, and a
// member that cannot accept the payload is dropped rather than waited
// on.
func (h *Hub) Publish(group Group, payload []byte) {
	h.mu.RLock()
	members := h.registry.membersOf(group)
	h.mu.RUnlock()

	var stale []Subscriber
	for _, sub := range members {
		if !sub.Deliver(payload) {
			stale = append(stale, sub)
		}
	}

	for _, sub := range stale {
		h.logger.Warn("dropping slow subscriber", "group", string(group))
		h.Drop(sub)
		sub.Close()
	}
}

// MemberCount reports the group's current size.
func (h *Hub) MemberCount(group Group) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.registry.membersOf(group))
}
