package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/RobuxEmperium/robux-site/modules/identity"
	"github.com/RobuxEmperium/robux-site/modules/realtime/hub"
)

// Handler upgrades /ws requests. Cross-origin checks are handled by the
// CORS middleware, so the upgrader accepts any origin.
type Handler struct {
	hub      *hub.Hub
	orders   OrderDirectory
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// RegisterRoutes registers the websocket endpoint to the given mux.
func RegisterRoutes(mux *http.ServeMux, h *hub.Hub, orders OrderDirectory, logger *slog.Logger) {
	handler := &Handler{
		hub:    h,
		orders: orders,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	mux.HandleFunc("GET /ws", handler.handleConnect)
}

// handleConnect upgrades the connection for an authenticated user. The
// connection starts with no subscriptions; the client joins groups
// explicitly afterwards.
func (h *Handler) handleConnect(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	client := newClient(ident, h.hub, h.orders, conn, h.logger)
	go client.writePump()
	go client.readPump()
}
