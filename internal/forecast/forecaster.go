package forecast

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/dwkang/goalplanner/internal/contracts"
)

// Forecaster fits an ordinary least-squares line to a price series and
// projects it forward. It is a deliberately naive extrapolation for
// short horizons, not a model of the market.
type Forecaster struct {
	log zerolog.Logger
}

// NewForecaster creates a new trend forecaster.
func NewForecaster(log zerolog.Logger) *Forecaster {
	return &Forecaster{
		log: log.With().Str("component", "forecast.forecaster").Logger(),
	}
}

// Forecast fits a line to (index position, price) pairs and extrapolates
// `periods` further positions. Two intentional simplifications are part
// of the contract:
//
//   - the regressor is the ordinal position in the series (0, 1, 2, ...),
//     not elapsed time, so irregular spacing compresses to unit steps
//   - projected positions map to consecutive calendar days after the last
//     observed date, regardless of the original spacing
//
// Points with a missing (NaN) or non-positive price are dropped before
// fitting. Fewer than 2 usable points degrade gracefully to an empty
// forecast rather than an error; periods < 1 is an ErrInvalidInput.
func (f *Forecaster) Forecast(series *contracts.PriceSeries, periods int) ([]contracts.ForecastPoint, error) {
	if periods < 1 {
		return nil, fmt.Errorf("periods %d must be positive: %w",
			periods, contracts.ErrInvalidInput)
	}
	if series == nil {
		return []contracts.ForecastPoint{}, nil
	}

	usable := make([]contracts.PricePoint, 0, series.Len())
	for _, p := range series.Points {
		if math.IsNaN(p.Close) || p.Close <= 0 {
			continue
		}
		usable = append(usable, p)
	}

	if len(usable) < 2 {
		f.log.Debug().
			Str("symbol", series.Symbol).
			Int("usable_points", len(usable)).
			Msg("not enough data to fit a trend, returning empty forecast")
		return []contracts.ForecastPoint{}, nil
	}

	slope, intercept := fitLine(usable)

	lastDate := usable[len(usable)-1].Date
	n := len(usable)

	points := make([]contracts.ForecastPoint, 0, periods)
	for i := 0; i < periods; i++ {
		x := float64(n + i)
		points = append(points, contracts.ForecastPoint{
			Date:      lastDate.AddDate(0, 0, i+1),
			Predicted: intercept + slope*x,
		})
	}

	f.log.Debug().
		Str("symbol", series.Symbol).
		Int("usable_points", n).
		Int("periods", periods).
		Float64("slope", slope).
		Msg("trend forecast generated")

	return points, nil
}

// fitLine computes the OLS slope and intercept over (position, price)
// pairs with positions 0..n-1.
func fitLine(points []contracts.PricePoint) (slope, intercept float64) {
	n := float64(len(points))

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range points {
		x := float64(i)
		sumX += x
		sumY += p.Close
		sumXY += x * p.Close
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		// Single distinct position cannot happen with n >= 2, but keep
		// the flat-line fallback rather than dividing by zero.
		return 0, sumY / n
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
