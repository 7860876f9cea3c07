// Package http provides HTTP handlers for the orders module.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	platformsqlite "github.com/RobuxEmperium/robux-site/internal/platform/sqlite"
	"github.com/RobuxEmperium/robux-site/modules/identity"
	"github.com/RobuxEmperium/robux-site/modules/orders/application/commands"
	"github.com/RobuxEmperium/robux-site/modules/orders/application/queries"
	"github.com/RobuxEmperium/robux-site/modules/orders/domain"
)

// Handler handles HTTP requests for the orders module.
type Handler struct {
	purchase   *commands.PurchaseHandler
	setStatus  *commands.SetStatusHandler
	listOrders *queries.ListOrdersHandler
}

// RegisterRoutes registers the orders module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	purchase *commands.PurchaseHandler,
	setStatus *commands.SetStatusHandler,
	listOrders *queries.ListOrdersHandler,
) {
	h := &Handler{
		purchase:   purchase,
		setStatus:  setStatus,
		listOrders: listOrders,
	}

	mux.HandleFunc("POST /api/purchase", h.handlePurchase)
	mux.HandleFunc("GET /api/orders", h.handleListOrders)
	mux.HandleFunc("POST /api/orders/{id}/mark", h.handleMark)
}

// Request/Response DTOs

type purchaseRequest struct {
	PackageID int64 `json:"packageId"`
}

type markRequest struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handlers

func (h *Handler) handlePurchase(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	orderID, err := h.purchase.Handle(r.Context(), commands.PurchaseCommand{
		BuyerID:   ident.UserID,
		PackageID: req.PackageID,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "orderId": orderID})
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	listings, err := h.listOrders.Handle(r.Context(), queries.ListOrdersQuery{Actor: ident})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listings)
}

func (h *Handler) handleMark(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	orderID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	var req markRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "missing")
		return
	}

	err = h.setStatus.Handle(r.Context(), commands.SetStatusCommand{
		Actor:   ident,
		OrderID: orderID,
		Status:  domain.Status(req.Status),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Helper functions

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidPackage):
		writeError(w, http.StatusBadRequest, "invalid_package")
	case errors.Is(err, domain.ErrSellerRoleRequired):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrOrderNotFound):
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
