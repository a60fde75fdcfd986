package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dwkang/goalplanner/internal/analytics"
	"github.com/dwkang/goalplanner/internal/contracts"
)

// correlateCmd represents the correlate command
var correlateCmd = &cobra.Command{
	Use:   "correlate [symbolA] [symbolB]",
	Short: "Correlation of two instruments' daily returns",
	Long: `Computes the Pearson correlation of two instruments' daily returns
over their overlapping history, plus a rolling-window correlation.

Example:
  go run ./cmd/planner correlate SPY QQQ
  go run ./cmd/planner correlate SPY BTC --window 60`,
	Args: cobra.ExactArgs(2),
	RunE: runCorrelate,
}

var correlateWindow int

func init() {
	rootCmd.AddCommand(correlateCmd)

	correlateCmd.Flags().IntVar(&correlateWindow, "window", 30, "rolling correlation window in days")
}

func runCorrelate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	seriesA, err := rt.advisor.LoadSeries(ctx, args[0])
	if err != nil {
		return err
	}
	seriesB, err := rt.advisor.LoadSeries(ctx, args[1])
	if err != nil {
		return err
	}

	report, err := rt.engine.Correlate(seriesA, seriesB, correlateWindow)
	if err != nil {
		return err
	}

	fmt.Printf("%s vs %s over %d overlapping days:\n",
		report.SymbolA, report.SymbolB, report.Samples)
	fmt.Printf("  correlation  %+.4f\n", report.Correlation)
	if n := len(report.Rolling); n > 0 {
		fmt.Printf("  rolling(%dd)  latest %+.4f\n", report.Window, report.Rolling[n-1])
	}

	for _, s := range []*contracts.PriceSeries{seriesA, seriesB} {
		daily := s.DailyReturns()
		fmt.Printf("  %-8s annualized vol %6.2f%%  cumulative return %+6.2f%%\n",
			s.Symbol,
			analytics.AnnualizedVolatility(daily)*100,
			analytics.CumulativeReturn(daily)*100)
	}
	return nil
}
