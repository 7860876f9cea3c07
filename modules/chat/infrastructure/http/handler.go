// Package http provides HTTP handlers for the chat module.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	platformsqlite "github.com/RobuxEmperium/robux-site/internal/platform/sqlite"
	"github.com/RobuxEmperium/robux-site/modules/chat/application/commands"
	"github.com/RobuxEmperium/robux-site/modules/chat/application/queries"
	"github.com/RobuxEmperium/robux-site/modules/chat/domain"
	"github.com/RobuxEmperium/robux-site/modules/identity"
	ordersdomain "github.com/RobuxEmperium/robux-site/modules/orders/domain"
)

// Handler handles HTTP requests for the chat module.
type Handler struct {
	postMessage  *commands.PostMessageHandler
	listMessages *queries.ListMessagesHandler
}

// RegisterRoutes registers the chat module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	postMessage *commands.PostMessageHandler,
	listMessages *queries.ListMessagesHandler,
) {
	h := &Handler{postMessage: postMessage, listMessages: listMessages}

	mux.HandleFunc("GET /api/messages/{orderId}", h.handleListMessages)
	mux.HandleFunc("POST /api/messages/{orderId}", h.handlePostMessage)
}

// Request/Response DTOs

type postMessageRequest struct {
	Content string `json:"content"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handlers

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	orderID, err := strconv.ParseInt(r.PathValue("orderId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	views, err := h.listMessages.Handle(r.Context(), queries.ListMessagesQuery{
		Actor:   ident,
		OrderID: orderID,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	orderID, err := strconv.ParseInt(r.PathValue("orderId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	messageID, err := h.postMessage.Handle(r.Context(), commands.PostMessageCommand{
		Actor:   ident,
		OrderID: orderID,
		Content: req.Content,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "messageId": messageID})
}

// Helper functions

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrContentRequired):
		writeError(w, http.StatusBadRequest, "missing")
	case errors.Is(err, domain.ErrNotParticipant):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, ordersdomain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, platformsqlite.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorResponse{Error: code})
}
