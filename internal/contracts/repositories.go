package contracts

import (
	"context"
	"time"
)

// PriceStore persists daily closing prices fetched from external sources.
type PriceStore interface {
	SaveSeries(ctx context.Context, series *PriceSeries) error
	GetSeries(ctx context.Context, symbol string, from, to time.Time) (*PriceSeries, error)
	GetLatest(ctx context.Context, symbol string) (*PricePoint, error)
	Symbols(ctx context.Context) ([]string, error)
}

// SeriesFetcher retrieves a price series from an external market data
// source for the given date range.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, symbol string, from, to time.Time) (*PriceSeries, error)
}
