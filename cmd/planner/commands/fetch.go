package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch [symbols...]",
	Short: "Fetch price history into the store",
	Long: `Force-fetches daily closing prices for the given symbols (or the
configured defaults) and persists them.

Crypto tickers (BTC, ETH, ...) are fetched from CoinGecko, everything
else from Yahoo Finance.

Example:
  go run ./cmd/planner fetch
  go run ./cmd/planner fetch SPY QQQ BTC`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	symbols := symbolsOrDefault(args, rt.cfg)

	var failed int
	for _, symbol := range symbols {
		series, err := rt.advisor.Refresh(ctx, symbol)
		if err != nil {
			rt.log.WithError(err).WithField("symbol", symbol).Error("Fetch failed")
			failed++
			continue
		}
		if series.IsEmpty() {
			fmt.Printf("%-8s no closes in range\n", symbol)
			continue
		}
		fmt.Printf("%-8s %5d closes (%s .. %s)\n",
			symbol, series.Len(),
			series.First().Date.Format("2006-01-02"),
			series.Latest().Date.Format("2006-01-02"))
	}

	if failed > 0 {
		return fmt.Errorf("fetch failed for %d of %d symbols", failed, len(symbols))
	}
	return nil
}
