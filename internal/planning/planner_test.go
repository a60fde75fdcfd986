package planning

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwkang/goalplanner/internal/contracts"
)

func newTestPlanner() *Planner {
	return NewPlanner(zerolog.Nop())
}

func TestPlanner_Plan(t *testing.T) {
	planner := newTestPlanner()

	// 100000 * 0.07 / (1.07^5 - 1) = 17389.0694...
	schedule, err := planner.Plan(100000, 5, 0.07)
	require.NoError(t, err)

	assert.InDelta(t, 17389.07, schedule.Yearly, 0.01)
	assert.InDelta(t, schedule.Yearly/12, schedule.Monthly, 1e-9)
	assert.InDelta(t, schedule.Yearly/52, schedule.Weekly, 1e-9)
}

func TestPlanner_Plan_NegativeReturnIntegerHorizon(t *testing.T) {
	planner := newTestPlanner()

	// Shrinking market: denominator is negative, contributions stay positive
	schedule, err := planner.Plan(50000, 4, -0.03)
	require.NoError(t, err)
	assert.Greater(t, schedule.Yearly, 0.0)
	assert.Greater(t, schedule.Yearly, 50000.0/4) // costs more than flat saving
}

func TestPlanner_Plan_ZeroReturn(t *testing.T) {
	planner := newTestPlanner()

	_, err := planner.Plan(100000, 5, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrZeroReturnUndefined)
}

func TestPlanner_Plan_InvalidInput(t *testing.T) {
	planner := newTestPlanner()

	tests := []struct {
		name  string
		goal  float64
		years float64
	}{
		{"zero goal", 0, 5},
		{"negative goal", -1000, 5},
		{"zero horizon", 100000, 0},
		{"negative horizon", 100000, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := planner.Plan(tt.goal, tt.years, 0.07)
			require.Error(t, err)
			assert.ErrorIs(t, err, contracts.ErrInvalidInput)
		})
	}
}

func TestPlanner_Plan_UndefinedExponentiation(t *testing.T) {
	planner := newTestPlanner()

	// 1 + (-1.5) = -0.5 raised to 2.5 is not a real number
	_, err := planner.Plan(100000, 2.5, -1.5)
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrUndefinedExponentiation)

	// Same base with an integer horizon evaluates algebraically
	_, err = planner.Plan(100000, 2, -1.5)
	require.NoError(t, err)
}

func TestPlanner_PlanFlat(t *testing.T) {
	planner := newTestPlanner()

	schedule, err := planner.PlanFlat(100000, 5)
	require.NoError(t, err)
	assert.InDelta(t, 20000.0, schedule.Yearly, 1e-9)
	assert.InDelta(t, 20000.0/12, schedule.Monthly, 1e-9)
	assert.InDelta(t, 20000.0/52, schedule.Weekly, 1e-9)

	_, err = planner.PlanFlat(-1, 5)
	assert.ErrorIs(t, err, contracts.ErrInvalidInput)

	_, err = planner.PlanFlat(100, 0)
	assert.ErrorIs(t, err, contracts.ErrInvalidInput)
}
