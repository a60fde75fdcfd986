package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dwkang/goalplanner/internal/contracts"
	"github.com/dwkang/goalplanner/internal/export"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [symbols...]",
	Short: "Export price history and metrics as CSV",
	Long: `Writes one CSV per instrument (Date,Close) plus a metrics.csv summary
table to the output directory.

Example:
  go run ./cmd/planner export
  go run ./cmd/planner export SPY QQQ --out ./data`,
	RunE: runExport,
}

var (
	exportDir       string
	exportNormalize bool
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportDir, "out", "market_data", "output directory")
	exportCmd.Flags().BoolVar(&exportNormalize, "normalize", false, "rebase each series to 100 for comparison")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	symbols := symbolsOrDefault(args, rt.cfg)
	writer := export.NewWriter(exportDir, rt.log.Zerolog())

	var candidates []contracts.Candidate
	for _, symbol := range symbols {
		series, err := rt.advisor.LoadSeries(ctx, symbol)
		if err != nil {
			return err
		}

		out := series
		if exportNormalize {
			rebased := series.Normalized(100)
			out = &rebased
		}
		path, err := writer.WriteSeries(out)
		if err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)

		metrics, err := rt.engine.Compute(series)
		if errors.Is(err, contracts.ErrInsufficientHistory) {
			continue
		}
		if err != nil {
			return err
		}
		candidates = append(candidates, contracts.Candidate{Symbol: symbol, Metrics: metrics})
	}

	if len(candidates) > 0 {
		path, err := writer.WriteMetrics(candidates)
		if err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}
