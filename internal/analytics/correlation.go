package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/dwkang/goalplanner/internal/contracts"
)

// Correlate computes the Pearson correlation of two instruments' daily
// returns over their shared dates, plus a rolling-window correlation
// sequence. Both series are aligned on date first; days present in only
// one series are dropped, mirroring an inner join of the two histories.
func (e *Engine) Correlate(a, b *contracts.PriceSeries, window int) (contracts.CorrelationReport, error) {
	if a == nil || a.IsEmpty() || b == nil || b.IsEmpty() {
		return contracts.CorrelationReport{}, fmt.Errorf(
			"correlation needs two non-empty series: %w", contracts.ErrInvalidInput)
	}
	if window < 2 {
		return contracts.CorrelationReport{}, fmt.Errorf(
			"rolling window %d must be at least 2: %w", window, contracts.ErrInvalidInput)
	}

	retA, retB := alignedReturns(a, b)
	if len(retA) < 2 {
		return contracts.CorrelationReport{}, fmt.Errorf(
			"series %q and %q share only %d return observation(s), need at least 2: %w",
			a.Symbol, b.Symbol, len(retA), contracts.ErrInsufficientHistory)
	}

	report := contracts.CorrelationReport{
		SymbolA:     a.Symbol,
		SymbolB:     b.Symbol,
		Correlation: Pearson(retA, retB),
		Rolling:     rollingCorrelation(retA, retB, window),
		Window:      window,
		Samples:     len(retA),
	}

	e.log.Debug().
		Str("symbol_a", a.Symbol).
		Str("symbol_b", b.Symbol).
		Int("samples", report.Samples).
		Float64("correlation", report.Correlation).
		Msg("correlation computed")

	return report, nil
}

// alignedReturns inner-joins two series on date and returns the paired
// daily return sequences of the shared dates.
func alignedReturns(a, b *contracts.PriceSeries) ([]float64, []float64) {
	closesB := make(map[time.Time]float64, b.Len())
	for _, p := range b.Points {
		closesB[dateOnly(p.Date)] = p.Close
	}

	var pricesA, pricesB []float64
	for _, p := range a.Points {
		if cb, ok := closesB[dateOnly(p.Date)]; ok {
			pricesA = append(pricesA, p.Close)
			pricesB = append(pricesB, cb)
		}
	}

	retA := make([]float64, 0, len(pricesA))
	retB := make([]float64, 0, len(pricesB))
	for i := 1; i < len(pricesA); i++ {
		retA = append(retA, (pricesA[i]-pricesA[i-1])/pricesA[i-1])
		retB = append(retB, (pricesB[i]-pricesB[i-1])/pricesB[i-1])
	}
	return retA, retB
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Pearson computes the Pearson correlation coefficient of two equal-length
// samples. Returns 0 when either sample has no variance.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n == 0 || n != len(y) {
		return 0
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

// rollingCorrelation slides a fixed window over the paired returns. The
// result has len(x)-window+1 entries; shorter inputs yield nil.
func rollingCorrelation(x, y []float64, window int) []float64 {
	if len(x) < window {
		return nil
	}

	out := make([]float64, 0, len(x)-window+1)
	for i := 0; i+window <= len(x); i++ {
		out = append(out, Pearson(x[i:i+window], y[i:i+window]))
	}
	return out
}
