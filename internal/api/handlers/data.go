package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dwkang/goalplanner/internal/advisor"
	"github.com/dwkang/goalplanner/pkg/logger"
)

// DataHandler serves data collection endpoints.
type DataHandler struct {
	advisor        *advisor.Advisor
	defaultSymbols []string
	logger         *logger.Logger
}

// NewDataHandler creates a new data handler.
func NewDataHandler(adv *advisor.Advisor, defaultSymbols []string, log *logger.Logger) *DataHandler {
	return &DataHandler{
		advisor:        adv,
		defaultSymbols: defaultSymbols,
		logger:         log,
	}
}

// CollectRequest is the POST /api/data/collect body.
type CollectRequest struct {
	Symbols []string `json:"symbols,omitempty"`
}

// CollectResponse reports per-symbol collection results.
type CollectResponse struct {
	Status    string         `json:"status"`
	Collected map[string]int `json:"collected"` // symbol -> points stored
	Failed    []string       `json:"failed,omitempty"`
}

// Collect force-refreshes price history for the given symbols (or the
// configured defaults) into the store.
// POST /api/data/collect
func (h *DataHandler) Collect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CollectRequest
	if r.Body != nil {
		// An empty body means "collect the defaults"
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	symbols := req.Symbols
	if len(symbols) == 0 {
		symbols = h.defaultSymbols
	}

	resp := CollectResponse{
		Status:    "success",
		Collected: make(map[string]int, len(symbols)),
	}

	for _, symbol := range symbols {
		series, err := h.advisor.Refresh(ctx, symbol)
		if err != nil {
			h.logger.WithError(err).WithFields(map[string]interface{}{
				"symbol": symbol,
			}).Error("Failed to collect prices")
			resp.Failed = append(resp.Failed, symbol)
			continue
		}
		resp.Collected[symbol] = series.Len()
	}

	if len(resp.Failed) == len(symbols) {
		resp.Status = "failed"
		respondJSON(w, http.StatusBadGateway, resp)
		return
	}
	if len(resp.Failed) > 0 {
		resp.Status = "partial"
	}

	respondJSON(w, http.StatusOK, resp)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
