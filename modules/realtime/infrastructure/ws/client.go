// Package ws is the websocket transport for the realtime hub.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/RobuxEmperium/robux-site/modules/identity"
	"github.com/RobuxEmperium/robux-site/modules/realtime/hub"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBufferSize = 32
)

// OrderDirectory resolves order ownership for join authorization.
type OrderDirectory interface {
	BuyerOf(ctx context.Context, orderID int64) (int64, error)
}

// joinRequest is the only message clients send: a request to join one
// group. Anything else is ignored.
type joinRequest struct {
	Action  string `json:"action"`
	OrderID int64  `json:"order_id"`
}

// Client is one websocket connection. It implements hub.Subscriber;
// Deliver hands payloads to a buffered channel drained by writePump, so
// a stalled connection never blocks a publish.
type Client struct {
	ident  identity.Identity
	hub    *hub.Hub
	orders OrderDirectory
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

var _ hub.Subscriber = (*Client)(nil)

func newClient(ident identity.Identity, h *hub.Hub, orders OrderDirectory, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		ident:  ident,
		hub:    h,
		orders: orders,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Deliver queues the payload for the write pump. Returns false when the
// buffer is full or the client is closing; the hub drops the client in
// response. The send channel is never closed, so a delivery racing a
// disconnect lands in the buffer and is discarded with it.
func (c *Client) Deliver(payload []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// Close detaches the client from the hub and signals both pumps to
// stop. Idempotent; invoked on read failure and by the hub when the
// client falls behind.
func (c *Client) Close() {
	c.once.Do(func() {
		c.hub.Drop(c)
		close(c.done)
	})
}

// readPump consumes join requests until the connection dies, then tears
// the client down.
func (c *Client) readPump() {
	defer func() {
		c.Close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket closed unexpectedly", "error", err)
			}
			return
		}

		var req joinRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			continue
		}
		c.handleJoin(req)
	}
}

// handleJoin applies the same access rules as the HTTP surface: the
// admin group is seller-only, an order group admits its buyer and any
// seller. Unauthorized joins are silently ignored.
func (c *Client) handleJoin(req joinRequest) {
	switch req.Action {
	case "join_admin":
		if !c.ident.IsSeller() {
			return
		}
		c.hub.Join(hub.GroupAdmin, c)

	case "join_order":
		if req.OrderID == 0 {
			return
		}
		if !c.ident.IsSeller() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			buyerID, err := c.orders.BuyerOf(ctx, req.OrderID)
			cancel()
			if err != nil || buyerID != c.ident.UserID {
				return
			}
		}
		c.hub.Join(hub.OrderGroup(req.OrderID), c)
	}
}

// writePump drains the send channel onto the wire and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
