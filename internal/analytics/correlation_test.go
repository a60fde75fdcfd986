package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwkang/goalplanner/internal/contracts"
)

func seriesFromCloses(symbol string, closes []float64) *contracts.PriceSeries {
	series := &contracts.PriceSeries{Symbol: symbol}
	for i, c := range closes {
		series.Points = append(series.Points, contracts.PricePoint{
			Date:  day(2024, 1, 1).AddDate(0, 0, i),
			Close: c,
		})
	}
	return series
}

func TestEngine_Correlate_PerfectlyCorrelated(t *testing.T) {
	engine := newTestEngine()

	a := seriesFromCloses("BTC", []float64{100, 110, 121, 133.1, 146.41})
	b := seriesFromCloses("ETH", []float64{10, 11, 12.1, 13.31, 14.641})

	report, err := engine.Correlate(a, b, 3)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, report.Correlation, 1e-9)
	assert.Equal(t, 4, report.Samples)
	assert.Equal(t, "BTC", report.SymbolA)
	assert.Equal(t, "ETH", report.SymbolB)

	// 4 returns, window 3 -> 2 rolling values
	require.Len(t, report.Rolling, 2)
	for _, r := range report.Rolling {
		assert.InDelta(t, 1.0, r, 1e-9)
	}
}

func TestEngine_Correlate_AntiCorrelated(t *testing.T) {
	engine := newTestEngine()

	a := seriesFromCloses("A", []float64{100, 110, 100, 110, 100})
	b := seriesFromCloses("B", []float64{100, 90, 100, 90, 100})

	report, err := engine.Correlate(a, b, 4)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, report.Correlation, 1e-9)
}

func TestEngine_Correlate_AlignsOnSharedDates(t *testing.T) {
	engine := newTestEngine()

	// b is missing the middle day; only shared dates join
	a := seriesFromCloses("A", []float64{100, 110, 121, 133.1})
	b := &contracts.PriceSeries{Symbol: "B", Points: []contracts.PricePoint{
		{Date: day(2024, 1, 1), Close: 50},
		{Date: day(2024, 1, 3), Close: 60},
		{Date: day(2024, 1, 4), Close: 72},
	}}

	report, err := engine.Correlate(a, b, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Samples)
}

func TestEngine_Correlate_Errors(t *testing.T) {
	engine := newTestEngine()

	a := seriesFromCloses("A", []float64{100, 110, 121})
	empty := &contracts.PriceSeries{Symbol: "E"}

	_, err := engine.Correlate(a, empty, 3)
	assert.ErrorIs(t, err, contracts.ErrInvalidInput)

	_, err = engine.Correlate(a, a, 1)
	assert.ErrorIs(t, err, contracts.ErrInvalidInput)

	// No overlapping dates at all
	b := &contracts.PriceSeries{Symbol: "B", Points: []contracts.PricePoint{
		{Date: day(2020, 1, 1), Close: 10},
		{Date: day(2020, 1, 2), Close: 11},
	}}
	_, err = engine.Correlate(a, b, 2)
	assert.ErrorIs(t, err, contracts.ErrInsufficientHistory)
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		y    []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"inverse", []float64{1, 2, 3}, []float64{3, 2, 1}, -1.0},
		{"no variance", []float64{1, 1, 1}, []float64{1, 2, 3}, 0.0},
		{"empty", nil, nil, 0.0},
		{"length mismatch", []float64{1, 2}, []float64{1}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Pearson(tt.x, tt.y), 1e-12)
		})
	}
}
