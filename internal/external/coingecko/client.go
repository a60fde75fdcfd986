package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dwkang/goalplanner/internal/contracts"
	"github.com/dwkang/goalplanner/pkg/config"
	"github.com/dwkang/goalplanner/pkg/httputil"
)

// Client fetches crypto price history from the CoinGecko market_chart
// API. It implements contracts.SeriesFetcher for crypto symbols.
type Client struct {
	baseURL string
	http    *httputil.Client
	log     zerolog.Logger

	// idMap translates ticker-style symbols to CoinGecko coin ids.
	idMap map[string]string
}

// NewClient creates a CoinGecko client.
func NewClient(cfg config.CoinGeckoConfig, httpClient *httputil.Client, log zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    httpClient,
		log:     log.With().Str("component", "external.coingecko").Logger(),
		idMap: map[string]string{
			"BTC":  "bitcoin",
			"ETH":  "ethereum",
			"SOL":  "solana",
			"XRP":  "ripple",
			"ADA":  "cardano",
			"DOGE": "dogecoin",
		},
	}
}

// marketChart is the market_chart/range payload: prices is a list of
// [millisecond timestamp, price] pairs.
type marketChart struct {
	Prices [][2]float64 `json:"prices"`
}

// CoinID resolves a symbol to a CoinGecko coin id. Unknown symbols are
// lowercased and passed through, so full ids like "bitcoin" also work.
func (c *Client) CoinID(symbol string) string {
	if id, ok := c.idMap[strings.ToUpper(symbol)]; ok {
		return id
	}
	return strings.ToLower(symbol)
}

// FetchSeries downloads USD prices for [from, to] and collapses the
// intraday samples CoinGecko returns into one average price per
// calendar day.
func (c *Client) FetchSeries(ctx context.Context, symbol string, from, to time.Time) (*contracts.PriceSeries, error) {
	u := fmt.Sprintf("%s/coins/%s/market_chart/range?vs_currency=usd&from=%d&to=%d",
		c.baseURL, url.PathEscape(c.CoinID(symbol)), from.Unix(), to.Unix())

	resp, err := c.http.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("coingecko fetch %s: %w", symbol, err)
	}

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, fmt.Errorf("coingecko read body: %w", err)
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("coingecko: status %d for %s: %s", resp.StatusCode, symbol, string(body))
	}

	var chart marketChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("coingecko decode: %w", err)
	}
	if len(chart.Prices) == 0 {
		return nil, fmt.Errorf("coingecko: no data returned for %s", symbol)
	}

	series := &contracts.PriceSeries{
		Symbol: symbol,
		Points: dailyAverages(chart.Prices),
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("coingecko: invalid series for %s: %w", symbol, err)
	}

	c.log.Debug().
		Str("symbol", symbol).
		Str("coin_id", c.CoinID(symbol)).
		Int("samples", len(chart.Prices)).
		Int("points", series.Len()).
		Msg("crypto series fetched")

	return series, nil
}

// dailyAverages buckets [ms timestamp, price] samples by UTC calendar
// day and averages each bucket.
func dailyAverages(prices [][2]float64) []contracts.PricePoint {
	type bucket struct {
		sum   float64
		count int
	}

	byDay := make(map[time.Time]*bucket)
	for _, pair := range prices {
		if pair[1] <= 0 {
			continue
		}
		t := time.UnixMilli(int64(pair[0])).UTC()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		b, ok := byDay[day]
		if !ok {
			b = &bucket{}
			byDay[day] = b
		}
		b.sum += pair[1]
		b.count++
	}

	points := make([]contracts.PricePoint, 0, len(byDay))
	for day, b := range byDay {
		points = append(points, contracts.PricePoint{
			Date:  day,
			Close: b.sum / float64(b.count),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}
