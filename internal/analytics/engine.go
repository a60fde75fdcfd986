package analytics

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dwkang/goalplanner/internal/contracts"
)

// Engine derives risk/return metrics from price series. It holds no
// state beyond its logger; Compute is a pure function of its input.
type Engine struct {
	log zerolog.Logger
}

// NewEngine creates a new metrics engine.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		log: log.With().Str("component", "analytics.engine").Logger(),
	}
}

// Compute turns a price series into the fixed metrics set:
//
//   - average annual return: mean of year-over-year changes of the last
//     close in each calendar year
//   - volatility: sample standard deviation of the same annual returns
//   - max drawdown: (series minimum − series maximum) / series maximum,
//     a whole-series measure rather than a sequential peak-to-trough one
//     (see SequentialDrawdown for the stricter variant)
//   - latest price: close of the final observation
//
// An empty series is an ErrInvalidInput; a series spanning fewer than 2
// distinct calendar years is an ErrInsufficientHistory, never a NaN.
func (e *Engine) Compute(series *contracts.PriceSeries) (contracts.Metrics, error) {
	if series == nil || series.IsEmpty() {
		return contracts.Metrics{}, fmt.Errorf("series %q is empty: %w",
			seriesName(series), contracts.ErrInvalidInput)
	}

	yearly := series.YearlyCloses()
	if len(yearly) < 2 {
		return contracts.Metrics{}, fmt.Errorf(
			"series %q spans %d calendar year(s), need at least 2: %w",
			series.Symbol, len(yearly), contracts.ErrInsufficientHistory)
	}

	annualReturns := make([]float64, 0, len(yearly)-1)
	for i := 1; i < len(yearly); i++ {
		prev := yearly[i-1].Close
		annualReturns = append(annualReturns, (yearly[i].Close-prev)/prev)
	}

	metrics := contracts.Metrics{
		AvgAnnualReturn: Mean(annualReturns),
		Volatility:      StdDev(annualReturns),
		MaxDrawdown:     wholeSeriesDrawdown(series),
		LatestPrice:     series.Latest().Close,
	}

	e.log.Debug().
		Str("symbol", series.Symbol).
		Int("points", series.Len()).
		Int("annual_returns", len(annualReturns)).
		Float64("avg_annual_return", metrics.AvgAnnualReturn).
		Float64("volatility", metrics.Volatility).
		Float64("max_drawdown", metrics.MaxDrawdown).
		Msg("metrics computed")

	return metrics, nil
}

// wholeSeriesDrawdown is (min − max) / max over the entire series,
// regardless of whether the minimum comes after the maximum. Kept for
// behavioral compatibility with existing consumers.
func wholeSeriesDrawdown(series *contracts.PriceSeries) float64 {
	min := series.Points[0].Close
	max := series.Points[0].Close
	for _, p := range series.Points[1:] {
		if p.Close < min {
			min = p.Close
		}
		if p.Close > max {
			max = p.Close
		}
	}
	return (min - max) / max
}

// SequentialDrawdown computes the true maximum peak-to-trough decline:
// the largest drop from a running high to a later low, as a fraction in
// [-1, 0]. Offered alongside Compute for callers that want the stricter
// drawdown definition.
func (e *Engine) SequentialDrawdown(series *contracts.PriceSeries) (float64, error) {
	if series == nil || series.IsEmpty() {
		return 0, fmt.Errorf("series %q is empty: %w",
			seriesName(series), contracts.ErrInvalidInput)
	}

	peak := series.Points[0].Close
	worst := 0.0
	for _, p := range series.Points {
		if p.Close > peak {
			peak = p.Close
		}
		dd := (p.Close - peak) / peak
		if dd < worst {
			worst = dd
		}
	}
	return worst, nil
}

func seriesName(series *contracts.PriceSeries) string {
	if series == nil {
		return ""
	}
	return series.Symbol
}
