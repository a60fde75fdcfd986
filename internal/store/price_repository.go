package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dwkang/goalplanner/internal/contracts"
)

// PriceRepository implements contracts.PriceStore on PostgreSQL.
// Daily closes are keyed by (symbol, trade_date).
type PriceRepository struct {
	pool *pgxpool.Pool
}

// NewPriceRepository creates a new price repository.
func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// EnsureSchema creates the prices table if it does not exist.
func (r *PriceRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS daily_prices (
			symbol      TEXT             NOT NULL,
			trade_date  DATE             NOT NULL,
			close_price DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (symbol, trade_date)
		)
	`

	_, err := r.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SaveSeries upserts every point of the series.
func (r *PriceRepository) SaveSeries(ctx context.Context, series *contracts.PriceSeries) error {
	if series == nil || series.IsEmpty() {
		return nil
	}

	query := `
		INSERT INTO daily_prices (symbol, trade_date, close_price)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol, trade_date) DO UPDATE SET
			close_price = EXCLUDED.close_price
	`

	// Simple loop for now (pgx.Batch optimization can be added later)
	for _, p := range series.Points {
		if _, err := r.pool.Exec(ctx, query, series.Symbol, p.Date, p.Close); err != nil {
			return fmt.Errorf("save %s %s: %w", series.Symbol, p.Date.Format("2006-01-02"), err)
		}
	}
	return nil
}

// GetSeries retrieves closes for a symbol within [from, to], oldest first.
func (r *PriceRepository) GetSeries(ctx context.Context, symbol string, from, to time.Time) (*contracts.PriceSeries, error) {
	query := `
		SELECT trade_date, close_price
		FROM daily_prices
		WHERE symbol = $1 AND trade_date BETWEEN $2 AND $3
		ORDER BY trade_date ASC
	`

	rows, err := r.pool.Query(ctx, query, symbol, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	series := &contracts.PriceSeries{Symbol: symbol}
	for rows.Next() {
		var p contracts.PricePoint
		if err := rows.Scan(&p.Date, &p.Close); err != nil {
			return nil, err
		}
		series.Points = append(series.Points, p)
	}
	return series, rows.Err()
}

// GetLatest retrieves the most recent close for a symbol. A symbol with
// no stored prices returns contracts.ErrInvalidInput.
func (r *PriceRepository) GetLatest(ctx context.Context, symbol string) (*contracts.PricePoint, error) {
	query := `
		SELECT trade_date, close_price
		FROM daily_prices
		WHERE symbol = $1
		ORDER BY trade_date DESC
		LIMIT 1
	`

	var p contracts.PricePoint
	err := r.pool.QueryRow(ctx, query, symbol).Scan(&p.Date, &p.Close)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("no prices stored for %s: %w", symbol, contracts.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Symbols lists every symbol with stored prices, alphabetically.
func (r *PriceRepository) Symbols(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT symbol
		FROM daily_prices
		ORDER BY symbol ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}
