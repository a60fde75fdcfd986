package external

import (
	"context"
	"strings"
	"time"

	"github.com/dwkang/goalplanner/internal/contracts"
)

// RoutingFetcher dispatches fetch requests by asset class: known crypto
// tickers go to the crypto source, everything else to the stock source.
type RoutingFetcher struct {
	stocks contracts.SeriesFetcher
	crypto contracts.SeriesFetcher

	cryptoSymbols map[string]struct{}
}

// defaultCryptoSymbols are the tickers routed to the crypto source.
var defaultCryptoSymbols = []string{"BTC", "ETH", "SOL", "XRP", "ADA", "DOGE"}

// NewRoutingFetcher creates a routing fetcher. A nil cryptoSymbols list
// uses the default ticker set.
func NewRoutingFetcher(stocks, crypto contracts.SeriesFetcher, cryptoSymbols []string) *RoutingFetcher {
	if cryptoSymbols == nil {
		cryptoSymbols = defaultCryptoSymbols
	}
	set := make(map[string]struct{}, len(cryptoSymbols))
	for _, s := range cryptoSymbols {
		set[strings.ToUpper(s)] = struct{}{}
	}
	return &RoutingFetcher{
		stocks:        stocks,
		crypto:        crypto,
		cryptoSymbols: set,
	}
}

// IsCrypto reports whether a symbol routes to the crypto source.
func (r *RoutingFetcher) IsCrypto(symbol string) bool {
	_, ok := r.cryptoSymbols[strings.ToUpper(symbol)]
	return ok
}

// FetchSeries implements contracts.SeriesFetcher.
func (r *RoutingFetcher) FetchSeries(ctx context.Context, symbol string, from, to time.Time) (*contracts.PriceSeries, error) {
	if r.IsCrypto(symbol) {
		return r.crypto.FetchSeries(ctx, symbol, from, to)
	}
	return r.stocks.FetchSeries(ctx, symbol, from, to)
}
