// Package handlers provides HTTP handlers for portfolio recommendation
// operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/roboadvisor/internal/modules/advisor"
	"github.com/aristath/roboadvisor/internal/modules/history"
	"github.com/aristath/roboadvisor/internal/modules/metrics"
	"github.com/aristath/roboadvisor/internal/modules/scoring"
)

// MinimumInvestment is the smallest accepted investment amount in dollars.
const MinimumInvestment = 100.0

// Handler handles portfolio recommendation HTTP requests
type Handler struct {
	service *advisor.Service
	store   *history.Store
	log     zerolog.Logger
}

// NewHandler creates a new advisor handler
func NewHandler(service *advisor.Service, store *history.Store, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		store:   store,
		log:     log.With().Str("handler", "advisor").Logger(),
	}
}

// HandleGeneratePortfolio handles POST /api/generate-portfolio
func (h *Handler) HandleGeneratePortfolio(w http.ResponseWriter, r *http.Request) {
	var req advisor.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "No data provided")
		return
	}

	// A zero amount is treated the same as a missing one.
	if req.Amount == nil || *req.Amount == 0 || req.RiskTolerance == "" {
		h.writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if *req.Amount < MinimumInvestment {
		h.writeError(w, http.StatusBadRequest, "Minimum investment amount is $100")
		return
	}

	rec, err := h.service.Generate(*req.Amount, req.RiskTolerance)
	if err != nil {
		switch {
		case errors.Is(err, history.ErrUnavailable),
			errors.Is(err, metrics.ErrInsufficientData),
			errors.Is(err, scoring.ErrNoEligibleAssets),
			errors.Is(err, scoring.ErrDegenerateScores):
			// Details stay in the logs; clients get a generic failure.
			h.log.Error().Err(err).Msg("Failed to generate portfolio")
			h.writeError(w, http.StatusInternalServerError, "Unable to generate portfolio")
		default:
			h.log.Error().Err(err).Msg("Unexpected error generating portfolio")
			h.writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.writeJSON(w, http.StatusOK, rec)
}

// HandleHealth handles GET /api/health. It always returns 200; a failed
// data load is reported in data_status rather than as an error.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	dataStatus := "loaded"
	if !h.store.Available() {
		dataStatus = "error"
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "healthy",
		"data_status":      dataStatus,
		"available_stocks": h.store.AssetCount(),
	})
}

// HandleListStocks handles GET /api/stocks
func (h *Handler) HandleListStocks(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"stocks": h.service.Universe(),
	})
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
