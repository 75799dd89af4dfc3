package handler

import (
	"net/http"
	"strconv"

	"dinehub/internal/service"

	"github.com/rs/zerolog"
)

// AnalyticsHandler handles analytics HTTP requests.
type AnalyticsHandler struct {
	service service.AnalyticsService
	logger  zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(service service.AnalyticsService, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.With().Str("handler", "analytics").Logger(),
	}
}

// TopSellers handles GET /api/orders/analytics/top-sellers requests.
func (h *AnalyticsHandler) TopSellers(w http.ResponseWriter, r *http.Request) {
	limit := service.DefaultTopSellersLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter", h.logger)
			return
		}
		limit = parsed
	}

	sellers, err := h.service.TopSellers(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute top sellers", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, sellers)
}
