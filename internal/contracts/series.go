package contracts

import (
	"fmt"
	"sort"
	"time"
)

// PricePoint is a single (date, closing price) observation.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an ordered sequence of daily closing prices for one
// instrument. Timestamps are strictly increasing with no duplicates and
// prices are positive. The series is owned by the caller; analytics
// components only ever read it.
type PriceSeries struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// Len returns the number of observations.
func (s *PriceSeries) Len() int {
	return len(s.Points)
}

// IsEmpty reports whether the series has no observations.
func (s *PriceSeries) IsEmpty() bool {
	return len(s.Points) == 0
}

// Latest returns the last observation. Callers must check IsEmpty first.
func (s *PriceSeries) Latest() PricePoint {
	return s.Points[len(s.Points)-1]
}

// First returns the first observation. Callers must check IsEmpty first.
func (s *PriceSeries) First() PricePoint {
	return s.Points[0]
}

// Validate checks the series invariants: strictly increasing dates and
// positive prices. Data source adapters run this before handing a series
// to the analytics layer; the analytics layer itself assumes a valid
// series and treats violations as caller error.
func (s *PriceSeries) Validate() error {
	for i, p := range s.Points {
		if p.Close <= 0 {
			return fmt.Errorf("series %s: non-positive price %.4f at %s",
				s.Symbol, p.Close, p.Date.Format("2006-01-02"))
		}
		if i > 0 && !s.Points[i-1].Date.Before(p.Date) {
			return fmt.Errorf("series %s: timestamps not strictly increasing at %s",
				s.Symbol, p.Date.Format("2006-01-02"))
		}
	}
	return nil
}

// YearlyCloses resamples the series to one price per calendar year,
// keeping the last observed price in each year. The result is ordered
// by year ascending.
func (s *PriceSeries) YearlyCloses() []PricePoint {
	byYear := make(map[int]PricePoint)
	for _, p := range s.Points {
		// Points are date-ordered, so the last write per year wins.
		byYear[p.Date.Year()] = p
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	closes := make([]PricePoint, 0, len(years))
	for _, y := range years {
		closes = append(closes, byYear[y])
	}
	return closes
}

// DailyReturns computes the day-over-day percentage change sequence.
// The result has length Len()-1; an empty or single-point series yields nil.
func (s *PriceSeries) DailyReturns() []float64 {
	if len(s.Points) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(s.Points)-1)
	for i := 1; i < len(s.Points); i++ {
		prev := s.Points[i-1].Close
		returns = append(returns, (s.Points[i].Close-prev)/prev)
	}
	return returns
}

// Normalized returns a copy of the series rebased so the first close
// equals base (typically 100), for cross-instrument comparison.
func (s *PriceSeries) Normalized(base float64) PriceSeries {
	out := PriceSeries{Symbol: s.Symbol, Points: make([]PricePoint, len(s.Points))}
	if len(s.Points) == 0 {
		return out
	}

	first := s.Points[0].Close
	for i, p := range s.Points {
		out.Points[i] = PricePoint{Date: p.Date, Close: p.Close / first * base}
	}
	return out
}
