package planning

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/dwkang/goalplanner/internal/contracts"
)

// Planner back-solves the future-value-of-annuity formula for the
// periodic contribution needed to reach a goal amount.
type Planner struct {
	log zerolog.Logger
}

// NewPlanner creates a new contribution planner.
func NewPlanner(log zerolog.Logger) *Planner {
	return &Planner{
		log: log.With().Str("component", "planning.planner").Logger(),
	}
}

// Plan computes the required contributions:
//
//	yearly  = goal * r / ((1+r)^years - 1)
//	monthly = yearly / 12
//	weekly  = yearly / 52
//
// Failure modes, each a typed error instead of a NaN or Inf result:
//
//   - goal <= 0 or years <= 0: ErrInvalidInput
//   - annualReturn == 0: ErrZeroReturnUndefined, the denominator is zero
//     (use PlanFlat for the zero-growth closed form)
//   - 1+annualReturn < 0 with a fractional years: ErrUndefinedExponentiation,
//     a negative base has no real fractional power
func (p *Planner) Plan(goal, years, annualReturn float64) (contracts.ContributionSchedule, error) {
	if goal <= 0 {
		return contracts.ContributionSchedule{}, fmt.Errorf(
			"goal amount %.2f must be positive: %w", goal, contracts.ErrInvalidInput)
	}
	if years <= 0 {
		return contracts.ContributionSchedule{}, fmt.Errorf(
			"horizon %.2f years must be positive: %w", years, contracts.ErrInvalidInput)
	}
	if annualReturn == 0 {
		return contracts.ContributionSchedule{}, fmt.Errorf(
			"annual return is zero, annuity denominator vanishes: %w",
			contracts.ErrZeroReturnUndefined)
	}

	base := 1 + annualReturn
	if base < 0 && years != math.Trunc(years) {
		return contracts.ContributionSchedule{}, fmt.Errorf(
			"growth base %.4f with fractional horizon %.2f has no real power: %w",
			base, years, contracts.ErrUndefinedExponentiation)
	}

	yearly := goal * annualReturn / (math.Pow(base, years) - 1)
	schedule := contracts.ContributionSchedule{
		Yearly:  yearly,
		Monthly: yearly / 12,
		Weekly:  yearly / 52,
	}

	p.log.Debug().
		Float64("goal", goal).
		Float64("years", years).
		Float64("annual_return", annualReturn).
		Float64("yearly", schedule.Yearly).
		Msg("contribution schedule computed")

	return schedule, nil
}

// PlanFlat is the degenerate zero-growth schedule: with no compounding
// the contribution is simply the goal spread evenly over the horizon.
// Offered as the documented fallback for annualReturn == 0.
func (p *Planner) PlanFlat(goal, years float64) (contracts.ContributionSchedule, error) {
	if goal <= 0 {
		return contracts.ContributionSchedule{}, fmt.Errorf(
			"goal amount %.2f must be positive: %w", goal, contracts.ErrInvalidInput)
	}
	if years <= 0 {
		return contracts.ContributionSchedule{}, fmt.Errorf(
			"horizon %.2f years must be positive: %w", years, contracts.ErrInvalidInput)
	}

	yearly := goal / years
	return contracts.ContributionSchedule{
		Yearly:  yearly,
		Monthly: yearly / 12,
		Weekly:  yearly / 52,
	}, nil
}
