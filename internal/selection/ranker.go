package selection

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/dwkang/goalplanner/internal/contracts"
)

// Weights defines the metric weights of the composite score.
type Weights struct {
	Return    float64 // average annual return
	Stability float64 // reciprocal of volatility
	Drawdown  float64 // reciprocal of max drawdown magnitude
}

// DefaultWeights returns the standard score weighting: return-heavy,
// with equal emphasis on low volatility and shallow drawdowns.
func DefaultWeights() Weights {
	return Weights{
		Return:    0.4,
		Stability: 0.3,
		Drawdown:  0.3,
	}
}

// Horizon multiplier: goals more than 10 years out score at full weight,
// shorter horizons are penalized.
const (
	longHorizonYears     = 10.0
	shortHorizonDiscount = 0.8
)

// Ranker scores candidate instruments against a goal horizon and picks
// a winner. Ranking is deterministic: equal scores are broken by
// lexical order of the identifier.
type Ranker struct {
	weights Weights
	log     zerolog.Logger
}

// NewRanker creates a ranker with default weights.
func NewRanker(log zerolog.Logger) *Ranker {
	return NewRankerWithWeights(DefaultWeights(), log)
}

// NewRankerWithWeights creates a ranker with custom weights.
func NewRankerWithWeights(weights Weights, log zerolog.Logger) *Ranker {
	return &Ranker{
		weights: weights,
		log:     log.With().Str("component", "selection.ranker").Logger(),
	}
}

// Rank scores every candidate and returns the winner. It fails with
// ErrEmptyCandidateSet on zero candidates and with ErrDivisionUndefined
// when any candidate's volatility or max drawdown is exactly zero; a
// reciprocal of zero must surface as an error, not as +Inf leaking into
// a recommendation.
func (r *Ranker) Rank(candidates []contracts.Candidate, horizonYears float64) (contracts.Recommendation, error) {
	if len(candidates) == 0 {
		return contracts.Recommendation{}, fmt.Errorf(
			"nothing to rank: %w", contracts.ErrEmptyCandidateSet)
	}

	scored := make([]contracts.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		score, err := r.Score(c.Metrics, horizonYears)
		if err != nil {
			return contracts.Recommendation{}, fmt.Errorf("candidate %q: %w", c.Symbol, err)
		}
		scored = append(scored, contracts.Recommendation{
			Symbol:  c.Symbol,
			Metrics: c.Metrics,
			Score:   score,
		})
	}

	// Highest score first; exact ties go to the lexically smaller symbol
	// so repeated runs over the same inputs always agree.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Symbol < scored[j].Symbol
	})

	winner := scored[0]
	r.log.Info().
		Int("candidates", len(candidates)).
		Float64("horizon_years", horizonYears).
		Str("winner", winner.Symbol).
		Float64("score", winner.Score).
		Msg("ranking completed")

	return winner, nil
}

// Score computes the composite score of one candidate's metrics:
//
//	(w.Return*ret + w.Stability/|vol| + w.Drawdown/|mdd|) * horizon multiplier
//
// The multiplier is 1.0 for horizons beyond 10 years and 0.8 otherwise.
func (r *Ranker) Score(m contracts.Metrics, horizonYears float64) (float64, error) {
	if m.Volatility == 0 {
		return 0, fmt.Errorf("volatility is zero, reciprocal undefined: %w",
			contracts.ErrDivisionUndefined)
	}
	if m.MaxDrawdown == 0 {
		return 0, fmt.Errorf("max drawdown is zero, reciprocal undefined: %w",
			contracts.ErrDivisionUndefined)
	}

	multiplier := shortHorizonDiscount
	if horizonYears > longHorizonYears {
		multiplier = 1.0
	}

	score := (r.weights.Return*m.AvgAnnualReturn +
		r.weights.Stability*(1/math.Abs(m.Volatility)) +
		r.weights.Drawdown*(1/math.Abs(m.MaxDrawdown))) * multiplier

	return score, nil
}
