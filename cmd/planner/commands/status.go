package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List stored instruments and their latest close",
	Long: `Shows every instrument with persisted history and the date and value
of its most recent stored close.

Example:
  go run ./cmd/planner status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	symbols, err := rt.store.Symbols(ctx)
	if err != nil {
		return err
	}
	if len(symbols) == 0 {
		fmt.Println("no stored history (run fetch first)")
		return nil
	}

	fmt.Printf("%-8s %-12s %12s\n", "SYMBOL", "LAST DATE", "LAST CLOSE")
	for _, symbol := range symbols {
		latest, err := rt.store.GetLatest(ctx, symbol)
		if err != nil {
			return err
		}
		fmt.Printf("%-8s %-12s %12.2f\n",
			symbol, latest.Date.Format("2006-01-02"), latest.Close)
	}
	return nil
}
