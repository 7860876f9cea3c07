// Package http provides HTTP handlers for the catalog module.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/RobuxEmperium/robux-site/modules/catalog/application/queries"
)

// Handler handles HTTP requests for the catalog module.
type Handler struct {
	listPackages *queries.ListPackagesHandler
}

// RegisterRoutes registers the catalog module routes to the given mux.
// The catalog is public: no authentication required.
func RegisterRoutes(mux *http.ServeMux, listPackages *queries.ListPackagesHandler) {
	h := &Handler{listPackages: listPackages}
	mux.HandleFunc("GET /api/packages", h.handleListPackages)
}

func (h *Handler) handleListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.listPackages.Handle(r.Context())
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "internal"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(packages)
}
