package advisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dwkang/goalplanner/internal/analytics"
	"github.com/dwkang/goalplanner/internal/contracts"
	"github.com/dwkang/goalplanner/internal/forecast"
	"github.com/dwkang/goalplanner/internal/planning"
	"github.com/dwkang/goalplanner/internal/selection"
)

// Advisor orchestrates the full goal-planning flow: load or fetch
// history, compute metrics per instrument, rank against the horizon,
// and derive a contribution schedule from the winner.
type Advisor struct {
	store   contracts.PriceStore
	fetcher contracts.SeriesFetcher

	engine     *analytics.Engine
	ranker     *selection.Ranker
	planner    *planning.Planner
	forecaster *forecast.Forecaster

	historyYears int
	log          zerolog.Logger
}

// Advice is the result of a full recommend flow.
type Advice struct {
	Recommendation contracts.Recommendation       `json:"recommendation"`
	HorizonYears   float64                        `json:"horizon_years"`
	Schedule       contracts.ContributionSchedule `json:"schedule"`
	Considered     []contracts.Candidate          `json:"considered"`
}

// New creates an advisor. historyYears controls how far back series
// are fetched when the store has no data.
func New(
	store contracts.PriceStore,
	fetcher contracts.SeriesFetcher,
	engine *analytics.Engine,
	ranker *selection.Ranker,
	planner *planning.Planner,
	forecaster *forecast.Forecaster,
	historyYears int,
	log zerolog.Logger,
) *Advisor {
	return &Advisor{
		store:        store,
		fetcher:      fetcher,
		engine:       engine,
		ranker:       ranker,
		planner:      planner,
		forecaster:   forecaster,
		historyYears: historyYears,
		log:          log.With().Str("component", "advisor").Logger(),
	}
}

// LoadSeries returns the stored history for a symbol, fetching and
// persisting it first when the store is empty for that symbol.
func (a *Advisor) LoadSeries(ctx context.Context, symbol string) (*contracts.PriceSeries, error) {
	to := time.Now().UTC()
	from := to.AddDate(-a.historyYears, 0, 0)

	series, err := a.store.GetSeries(ctx, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("load %s from store: %w", symbol, err)
	}
	if !series.IsEmpty() {
		return series, nil
	}

	a.log.Info().Str("symbol", symbol).Msg("no stored history, fetching")

	series, err = a.fetcher.FetchSeries(ctx, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	if err := a.store.SaveSeries(ctx, series); err != nil {
		return nil, fmt.Errorf("persist %s: %w", symbol, err)
	}
	return series, nil
}

// Refresh force-fetches history for a symbol and persists it,
// regardless of what the store already holds.
func (a *Advisor) Refresh(ctx context.Context, symbol string) (*contracts.PriceSeries, error) {
	to := time.Now().UTC()
	from := to.AddDate(-a.historyYears, 0, 0)

	series, err := a.fetcher.FetchSeries(ctx, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	if err := a.store.SaveSeries(ctx, series); err != nil {
		return nil, fmt.Errorf("persist %s: %w", symbol, err)
	}
	return series, nil
}

// Metrics loads history for one symbol and computes its metrics.
func (a *Advisor) Metrics(ctx context.Context, symbol string) (contracts.Metrics, error) {
	series, err := a.LoadSeries(ctx, symbol)
	if err != nil {
		return contracts.Metrics{}, err
	}
	return a.engine.Compute(series)
}

// Candidates computes metrics for every symbol. Symbols with too little
// history are skipped with a warning rather than failing the whole set;
// an error is returned only when no candidate survives.
func (a *Advisor) Candidates(ctx context.Context, symbols []string) ([]contracts.Candidate, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols given: %w", contracts.ErrEmptyCandidateSet)
	}

	candidates := make([]contracts.Candidate, 0, len(symbols))
	for _, symbol := range symbols {
		metrics, err := a.Metrics(ctx, symbol)
		if errors.Is(err, contracts.ErrInsufficientHistory) {
			a.log.Warn().Str("symbol", symbol).Msg("skipping candidate with insufficient history")
			continue
		}
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, contracts.Candidate{Symbol: symbol, Metrics: metrics})
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidate has enough history: %w", contracts.ErrEmptyCandidateSet)
	}
	return candidates, nil
}

// Recommend runs the end-to-end flow: metrics for every symbol, rank
// against the horizon, contribution schedule from the winner's average
// annual return. Horizon validation (target date at least a year out)
// belongs to the CLI and API layers, not here.
func (a *Advisor) Recommend(ctx context.Context, symbols []string, goal, horizonYears float64) (*Advice, error) {
	candidates, err := a.Candidates(ctx, symbols)
	if err != nil {
		return nil, err
	}

	rec, err := a.ranker.Rank(candidates, horizonYears)
	if err != nil {
		return nil, err
	}

	schedule, err := a.planner.Plan(goal, horizonYears, rec.Metrics.AvgAnnualReturn)
	if errors.Is(err, contracts.ErrZeroReturnUndefined) {
		a.log.Warn().Str("symbol", rec.Symbol).Msg("flat average return, falling back to even spread")
		schedule, err = a.planner.PlanFlat(goal, horizonYears)
	}
	if err != nil {
		return nil, err
	}

	a.log.Info().
		Str("symbol", rec.Symbol).
		Float64("score", rec.Score).
		Float64("horizon_years", horizonYears).
		Float64("yearly", schedule.Yearly).
		Msg("recommendation computed")

	return &Advice{
		Recommendation: rec,
		HorizonYears:   horizonYears,
		Schedule:       schedule,
		Considered:     candidates,
	}, nil
}

// Forecast loads history for a symbol and extrapolates its trend.
func (a *Advisor) Forecast(ctx context.Context, symbol string, periods int) ([]contracts.ForecastPoint, error) {
	series, err := a.LoadSeries(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return a.forecaster.Forecast(series, periods)
}

// HorizonYears converts a target date into a fractional year horizon
// measured from now.
func HorizonYears(targetDate, now time.Time) float64 {
	return targetDate.Sub(now).Hours() / (24 * 365.25)
}

// ValidateTargetDate enforces the caller-side rule that a goal must be
// at least one year out.
func ValidateTargetDate(targetDate, now time.Time) error {
	if targetDate.Before(now.AddDate(1, 0, 0)) {
		return fmt.Errorf("target date %s must be at least one year in the future: %w",
			targetDate.Format("2006-01-02"), contracts.ErrInvalidInput)
	}
	return nil
}
