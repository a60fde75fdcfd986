package analytics

import "math"

// Mean computes the arithmetic mean.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev computes the sample standard deviation (n-1 denominator).
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sumSq float64
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

// AnnualizedVolatility scales the standard deviation of daily returns
// by sqrt(252 trading days).
func AnnualizedVolatility(dailyReturns []float64) float64 {
	return StdDev(dailyReturns) * math.Sqrt(252)
}

// CumulativeReturn sums a return sequence.
func CumulativeReturn(returns []float64) float64 {
	var sum float64
	for _, r := range returns {
		sum += r
	}
	return sum
}
