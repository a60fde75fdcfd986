package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dwkang/goalplanner/internal/scheduler"
	"github.com/dwkang/goalplanner/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the background scheduler",
	Long: `Manages scheduled background jobs.

Registered jobs:
  price_refresh - re-fetches the default instrument set daily at 22:30 UTC

Example:
  go run ./cmd/planner scheduler start
  go run ./cmd/planner scheduler run price_refresh`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler daemon",
		RunE:  runSchedulerStart,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run one job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runSchedulerJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func buildScheduler(cmd *cobra.Command) (*scheduler.Scheduler, *runtime, error) {
	rt, err := buildRuntime(cmd.Context())
	if err != nil {
		return nil, nil, err
	}

	sched := scheduler.New(rt.log)
	refresh := jobs.NewRefreshJob(rt.advisor, rt.cfg.DefaultSymbols, rt.log)
	if err := sched.AddJob(refresh); err != nil {
		rt.close()
		return nil, nil, err
	}
	return sched, rt, nil
}

func runSchedulerStart(cmd *cobra.Command, args []string) error {
	sched, rt, err := buildScheduler(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	sched.Start()
	fmt.Printf("Scheduler running with jobs %v (Ctrl+C to stop)\n", sched.JobNames())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func runSchedulerJob(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	refresh := jobs.NewRefreshJob(rt.advisor, rt.cfg.DefaultSymbols, rt.log)

	jobName := args[0]
	if jobName != refresh.Name() {
		return fmt.Errorf("job %s not found (available: %s)", jobName, refresh.Name())
	}

	fmt.Printf("Running %s...\n", jobName)
	if err := refresh.Run(cmd.Context()); err != nil {
		return fmt.Errorf("job %s failed: %w", jobName, err)
	}
	fmt.Printf("Job %s completed\n", jobName)
	return nil
}
