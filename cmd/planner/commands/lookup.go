package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dwkang/goalplanner/internal/external/yahoo"
	"github.com/dwkang/goalplanner/pkg/httputil"
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup [query]",
	Short: "Search for instrument symbols",
	Long: `Searches Yahoo Finance for instruments matching a query and prints
the candidate symbols. Needs no database.

Example:
  go run ./cmd/planner lookup "s&p 500"
  go run ./cmd/planner lookup nasdaq`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, log, err := initRuntime()
	if err != nil {
		return err
	}

	client := yahoo.NewClient(cfg.Yahoo,
		httputil.New(log).WithRateLimit(cfg.Yahoo.RequestsPerSec), log.Zerolog())

	results, err := client.Lookup(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}

	fmt.Printf("%-10s %-12s %-10s %s\n", "SYMBOL", "EXCHANGE", "TYPE", "NAME")
	for _, r := range results {
		fmt.Printf("%-10s %-12s %-10s %s\n", r.Symbol, r.Exchange, r.Type, r.Name)
	}
	return nil
}
