package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dwkang/goalplanner/internal/advisor"
	"github.com/dwkang/goalplanner/internal/contracts"
	"github.com/dwkang/goalplanner/pkg/logger"
)

// RecommendHandler serves the end-to-end goal planning endpoint.
type RecommendHandler struct {
	advisor        *advisor.Advisor
	defaultSymbols []string
	logger         *logger.Logger
}

// NewRecommendHandler creates a new recommend handler.
func NewRecommendHandler(adv *advisor.Advisor, defaultSymbols []string, log *logger.Logger) *RecommendHandler {
	return &RecommendHandler{
		advisor:        adv,
		defaultSymbols: defaultSymbols,
		logger:         log,
	}
}

// RecommendRequest is the POST /api/recommend body.
type RecommendRequest struct {
	GoalAmount float64  `json:"goal_amount"`
	TargetDate string   `json:"target_date"` // YYYY-MM-DD
	Symbols    []string `json:"symbols,omitempty"`
}

// Recommend runs the full flow: metrics per candidate, rank against the
// horizon, contribution schedule from the winner.
// POST /api/recommend
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.GoalAmount <= 0 {
		respondError(w, http.StatusBadRequest, "goal_amount must be positive")
		return
	}

	targetDate, err := time.Parse("2006-01-02", req.TargetDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "target_date must be YYYY-MM-DD")
		return
	}

	now := time.Now().UTC()
	if err := advisor.ValidateTargetDate(targetDate, now); err != nil {
		respondError(w, http.StatusBadRequest, "target_date must be at least one year in the future")
		return
	}

	symbols := req.Symbols
	if len(symbols) == 0 {
		symbols = h.defaultSymbols
	}

	advice, err := h.advisor.Recommend(ctx, symbols, req.GoalAmount, advisor.HorizonYears(targetDate, now))
	if errors.Is(err, contracts.ErrEmptyCandidateSet) {
		respondError(w, http.StatusUnprocessableEntity, "no candidate has enough history")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute recommendation")
		respondError(w, http.StatusInternalServerError, "failed to compute recommendation")
		return
	}

	respondJSON(w, http.StatusOK, advice)
}
