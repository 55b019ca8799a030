// Package handlers provides HTTP handlers for technical indicator queries.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/roboadvisor/internal/modules/history"
	"github.com/aristath/roboadvisor/internal/modules/indicators"
)

// Handler handles indicator HTTP requests
type Handler struct {
	service *indicators.Service
	log     zerolog.Logger
}

// NewHandler creates a new indicators handler
func NewHandler(service *indicators.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "indicators").Logger(),
	}
}

// HandleGetIndicators handles GET /api/stocks/{name}/indicators
func (h *Handler) HandleGetIndicators(w http.ResponseWriter, r *http.Request, asset string) {
	summary, err := h.service.Summarize(asset)
	if err != nil {
		switch {
		case errors.Is(err, history.ErrUnavailable):
			h.writeError(w, http.StatusServiceUnavailable, "Price data not loaded")
		case errors.Is(err, indicators.ErrUnknownAsset):
			h.writeError(w, http.StatusNotFound, "Unknown asset")
		default:
			h.log.Error().Err(err).Str("asset", asset).Msg("Failed to compute indicators")
			h.writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.writeJSON(w, http.StatusOK, summary)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes a JSON error body with the given status
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
