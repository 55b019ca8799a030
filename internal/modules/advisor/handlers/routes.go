package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all portfolio recommendation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/generate-portfolio", h.HandleGeneratePortfolio)
	r.Get("/health", h.HandleHealth)
	r.Get("/stocks", h.HandleListStocks)
}
