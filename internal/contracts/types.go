package contracts

import "time"

// Metrics is the fixed set of risk/return statistics derived from one
// price series. Values are recomputed whenever the source series changes
// and never mutated in place.
type Metrics struct {
	AvgAnnualReturn float64 `json:"avg_annual_return"` // arithmetic mean of annual returns
	Volatility      float64 `json:"volatility"`        // sample stddev of annual returns, >= 0
	MaxDrawdown     float64 `json:"max_drawdown"`      // whole-series (min-max)/max, in [-1, 0]
	LatestPrice     float64 `json:"latest_price"`
}

// Candidate pairs an instrument identifier with its metrics. A candidate
// set, keyed by unique identifier, is the ranker's input.
type Candidate struct {
	Symbol  string  `json:"symbol"`
	Metrics Metrics `json:"metrics"`
}

// Recommendation is the ranking winner: the selected identifier, its
// metrics and the numeric score it won with.
type Recommendation struct {
	Symbol  string  `json:"symbol"`
	Metrics Metrics `json:"metrics"`
	Score   float64 `json:"score"`
}

// ContributionSchedule holds the periodic contributions required to
// reach a goal amount over a horizon at an assumed annual return.
type ContributionSchedule struct {
	Yearly  float64 `json:"yearly"`
	Monthly float64 `json:"monthly"`
	Weekly  float64 `json:"weekly"`
}

// ForecastPoint is one projected (future date, predicted price) pair.
type ForecastPoint struct {
	Date      time.Time `json:"date"`
	Predicted float64   `json:"predicted"`
}

// CorrelationReport summarizes how two instruments' daily returns move
// together over a shared window.
type CorrelationReport struct {
	SymbolA     string    `json:"symbol_a"`
	SymbolB     string    `json:"symbol_b"`
	Correlation float64   `json:"correlation"`
	Rolling     []float64 `json:"rolling,omitempty"` // rolling-window correlations
	Window      int       `json:"window"`            // rolling window size in days
	Samples     int       `json:"samples"`           // aligned return observations used
}
