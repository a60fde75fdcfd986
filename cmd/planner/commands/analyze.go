package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dwkang/goalplanner/internal/contracts"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [symbols...]",
	Short: "Compute metrics for instruments",
	Long: `Computes historical metrics per instrument: average annual return,
volatility of yearly returns, maximum drawdown, and latest price.

Example:
  go run ./cmd/planner analyze
  go run ./cmd/planner analyze SPY QQQ`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	symbols := symbolsOrDefault(args, rt.cfg)

	fmt.Printf("%-8s %12s %12s %12s %12s\n",
		"SYMBOL", "AVG RETURN", "VOLATILITY", "MAX DD", "LATEST")

	for _, symbol := range symbols {
		metrics, err := rt.advisor.Metrics(ctx, symbol)
		if errors.Is(err, contracts.ErrInsufficientHistory) {
			fmt.Printf("%-8s insufficient history\n", symbol)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Printf("%-8s %11.2f%% %11.2f%% %11.2f%% %12.2f\n",
			symbol,
			metrics.AvgAnnualReturn*100,
			metrics.Volatility*100,
			metrics.MaxDrawdown*100,
			metrics.LatestPrice)
	}
	return nil
}
