package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all indicator routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stocks/{name}/indicators", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		h.HandleGetIndicators(w, r, name)
	})
}
