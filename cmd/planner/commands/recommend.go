package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dwkang/goalplanner/internal/advisor"
)

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:   "recommend [symbols...]",
	Short: "Recommend an instrument and contribution schedule",
	Long: `Runs the full planning flow: computes metrics for every candidate,
ranks them against the horizon, and derives the yearly, monthly, and
weekly contribution needed to reach the goal by the target date.

The target date must be at least one year in the future.

Example:
  go run ./cmd/planner recommend --goal 100000 --target-date 2040-01-01
  go run ./cmd/planner recommend SPY QQQ --goal 50000 --target-date 2032-06-01`,
	RunE: runRecommend,
}

var (
	recommendGoal       float64
	recommendTargetDate string
)

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().Float64Var(&recommendGoal, "goal", 0, "goal amount (required)")
	recommendCmd.Flags().StringVar(&recommendTargetDate, "target-date", "", "target date, YYYY-MM-DD (required)")
	recommendCmd.MarkFlagRequired("goal")
	recommendCmd.MarkFlagRequired("target-date")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	targetDate, err := time.Parse("2006-01-02", recommendTargetDate)
	if err != nil {
		return fmt.Errorf("target-date must be YYYY-MM-DD: %w", err)
	}

	now := time.Now().UTC()
	if err := advisor.ValidateTargetDate(targetDate, now); err != nil {
		return err
	}

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	symbols := symbolsOrDefault(args, rt.cfg)
	horizon := advisor.HorizonYears(targetDate, now)

	advice, err := rt.advisor.Recommend(ctx, symbols, recommendGoal, horizon)
	if err != nil {
		return err
	}

	rec := advice.Recommendation
	fmt.Printf("Recommendation: %s (score %.4f)\n", rec.Symbol, rec.Score)
	fmt.Printf("  avg annual return  %8.2f%%\n", rec.Metrics.AvgAnnualReturn*100)
	fmt.Printf("  volatility         %8.2f%%\n", rec.Metrics.Volatility*100)
	fmt.Printf("  max drawdown       %8.2f%%\n", rec.Metrics.MaxDrawdown*100)
	fmt.Printf("  latest price       %8.2f\n", rec.Metrics.LatestPrice)
	fmt.Printf("\nTo reach %.2f by %s (%.1f years):\n",
		recommendGoal, targetDate.Format("2006-01-02"), advice.HorizonYears)
	fmt.Printf("  yearly   %12.2f\n", advice.Schedule.Yearly)
	fmt.Printf("  monthly  %12.2f\n", advice.Schedule.Monthly)
	fmt.Printf("  weekly   %12.2f\n", advice.Schedule.Weekly)
	return nil
}
