package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/topmonde/internal/scheduler"
	"github.com/wonny/topmonde/internal/scheduler/jobs"
)

// Cron expressions include the seconds field.
const (
	pipelineSchedule = "0 30 7 * * *" // daily 07:30, after the screener export lands
	historySchedule  = "0 0 8 * * 6"  // saturdays 08:00
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the pipeline on a schedule",
	Long: `Starts the long-lived scheduler daemon.

Registered jobs:
- daily_pipeline: every day at 07:30 (cleanup, rank, curate)
- history_refresh: saturdays at 08:00 (monthly data + performers table)

Stop with Ctrl+C.

Example:
  go run ./cmd/topmonde schedule`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return fmt.Errorf("❌ Failed to load config: %w", err)
	}

	stage := newStage(cfg, log)
	if err := stage.EnsureLayout(); err != nil {
		return fmt.Errorf("❌ Failed to prepare data directories: %w", err)
	}

	sched := scheduler.New(log)

	pipeline := jobs.NewPipelineJob(
		stage,
		newProcessor(cfg, stage, log),
		newCurationRunner(cfg, stage, log),
		pipelineSchedule,
		log,
	)
	if err := sched.AddJob(pipeline); err != nil {
		return fmt.Errorf("❌ Failed to register pipeline job: %w", err)
	}

	historyJob := jobs.NewHistoryJob(newHistoryService(cfg, stage, log), historySchedule, log)
	if err := sched.AddJob(historyJob); err != nil {
		return fmt.Errorf("❌ Failed to register history job: %w", err)
	}

	sched.Start()

	fmt.Println("✅ Scheduler started")
	fmt.Println("\nRegistered jobs:")
	for _, name := range sched.JobNames() {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	fmt.Println("\n✅ Scheduler stopped")
	return nil
}
