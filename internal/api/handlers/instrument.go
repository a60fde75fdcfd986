package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dwkang/goalplanner/internal/advisor"
	"github.com/dwkang/goalplanner/internal/contracts"
	"github.com/dwkang/goalplanner/pkg/logger"
)

// InstrumentHandler serves per-instrument analytics endpoints.
type InstrumentHandler struct {
	advisor *advisor.Advisor
	logger  *logger.Logger
}

// NewInstrumentHandler creates a new instrument handler.
func NewInstrumentHandler(adv *advisor.Advisor, log *logger.Logger) *InstrumentHandler {
	return &InstrumentHandler{advisor: adv, logger: log}
}

// GetMetrics returns computed metrics for one instrument.
// GET /api/instruments/{symbol}/metrics
func (h *InstrumentHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	symbol := mux.Vars(r)["symbol"]

	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	metrics, err := h.advisor.Metrics(ctx, symbol)
	if errors.Is(err, contracts.ErrInsufficientHistory) {
		respondError(w, http.StatusUnprocessableEntity, "not enough history to compute metrics")
		return
	}
	if errors.Is(err, contracts.ErrInvalidInput) {
		respondError(w, http.StatusNotFound, "no price data found")
		return
	}
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"symbol": symbol,
		}).Error("Failed to compute metrics")
		respondError(w, http.StatusInternalServerError, "failed to compute metrics")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":  symbol,
		"metrics": metrics,
	})
}

// GetForecast returns a trend extrapolation for one instrument.
// GET /api/instruments/{symbol}/forecast?periods=30
func (h *InstrumentHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	symbol := mux.Vars(r)["symbol"]

	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	periods := 30
	if p := r.URL.Query().Get("periods"); p != "" {
		v, err := strconv.Atoi(p)
		if err != nil || v < 1 {
			respondError(w, http.StatusBadRequest, "periods must be a positive integer")
			return
		}
		periods = v
	}

	points, err := h.advisor.Forecast(ctx, symbol, periods)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"symbol": symbol,
		}).Error("Failed to forecast")
		respondError(w, http.StatusInternalServerError, "failed to forecast")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":   symbol,
		"periods":  periods,
		"forecast": points,
	})
}
