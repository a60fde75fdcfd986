package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// forecastCmd represents the forecast command
var forecastCmd = &cobra.Command{
	Use:   "forecast [symbol]",
	Short: "Extrapolate the price trend of an instrument",
	Long: `Fits a linear trend to the stored history of one instrument and
projects it the given number of days forward.

Example:
  go run ./cmd/planner forecast SPY
  go run ./cmd/planner forecast BTC --periods 14`,
	Args: cobra.ExactArgs(1),
	RunE: runForecast,
}

var forecastPeriods int

func init() {
	rootCmd.AddCommand(forecastCmd)

	forecastCmd.Flags().IntVar(&forecastPeriods, "periods", 30, "days to project forward")
}

func runForecast(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	symbol := args[0]
	points, err := rt.advisor.Forecast(ctx, symbol, forecastPeriods)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		fmt.Printf("%s: not enough history to fit a trend\n", symbol)
		return nil
	}

	fmt.Printf("%s trend projection (%d days):\n", symbol, forecastPeriods)
	for _, p := range points {
		fmt.Printf("  %s  %10.2f\n", p.Date.Format("2006-01-02"), p.Predicted)
	}
	return nil
}
