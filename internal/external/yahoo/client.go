package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/dwkang/goalplanner/internal/contracts"
	"github.com/dwkang/goalplanner/pkg/config"
	"github.com/dwkang/goalplanner/pkg/httputil"
)

// Client fetches daily closing prices from the Yahoo Finance v8 chart
// API. It implements contracts.SeriesFetcher.
type Client struct {
	baseURL       string
	lookupBaseURL string
	http          *httputil.Client
	log           zerolog.Logger

	// symbolMap translates user-facing aliases to Yahoo tickers.
	symbolMap map[string]string
}

// NewClient creates a Yahoo Finance client. The shared httputil client
// should already carry the rate limit from config.
func NewClient(cfg config.YahooConfig, httpClient *httputil.Client, log zerolog.Logger) *Client {
	return &Client{
		baseURL:       cfg.BaseURL,
		lookupBaseURL: cfg.LookupBaseURL,
		http:          httpClient,
		log:           log.With().Str("component", "external.yahoo").Logger(),
		symbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

// chartResponse is the subset of the v8 chart payload we decode.
// Close values arrive as a nullable array, hence *float64.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *Client) yahooSymbol(symbol string) string {
	if mapped, ok := c.symbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// FetchSeries downloads daily closes for [from, to]. Null bars
// (holidays, halted sessions) are skipped. Adjusted closes are
// preferred when Yahoo provides them.
func (c *Client) FetchSeries(ctx context.Context, symbol string, from, to time.Time) (*contracts.PriceSeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		c.baseURL, url.PathEscape(c.yahooSymbol(symbol)), from.Unix(), to.Unix())

	resp, err := c.http.GetWithHeaders(ctx, u, map[string]string{
		"User-Agent": "Mozilla/5.0",
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch %s: %w", symbol, err)
	}

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("yahoo: status %d for %s: %s", resp.StatusCode, symbol, string(body))
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error for %s: %s", symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned for %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote indicators for %s", symbol)
	}

	closes := result.Indicators.Quote[0].Close
	if len(result.Indicators.AdjClose) > 0 && len(result.Indicators.AdjClose[0].AdjClose) == len(result.Timestamp) {
		closes = result.Indicators.AdjClose[0].AdjClose
	}

	series := &contracts.PriceSeries{
		Symbol: symbol,
		Points: make([]contracts.PricePoint, 0, len(result.Timestamp)),
	}
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		close := *closes[i]
		if close <= 0 || math.IsNaN(close) {
			continue
		}
		day := time.Unix(ts, 0).UTC()
		date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

		// Yahoo appends the live intraday bar with a same-day timestamp;
		// keep only the latest close per calendar day.
		if n := len(series.Points); n > 0 && series.Points[n-1].Date.Equal(date) {
			series.Points[n-1].Close = close
			continue
		}
		series.Points = append(series.Points, contracts.PricePoint{
			Date:  date,
			Close: close,
		})
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("yahoo: invalid series for %s: %w", symbol, err)
	}

	c.log.Debug().
		Str("symbol", symbol).
		Int("points", series.Len()).
		Time("from", from).
		Time("to", to).
		Msg("price series fetched")

	return series, nil
}
