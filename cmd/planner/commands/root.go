package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Investment goal planner backend",
	Long: `Investment Goal Planner CLI

Analyzes historical index ETF and crypto prices, ranks candidates for a
savings goal, and derives the contribution schedule needed to reach it.

Usage:
  go run ./cmd/planner [command]

Examples:
  go run ./cmd/planner api
  go run ./cmd/planner fetch SPY QQQ
  go run ./cmd/planner recommend --goal 100000 --target-date 2040-01-01
  go run ./cmd/planner forecast SPY --periods 30`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
