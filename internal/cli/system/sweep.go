package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Ebi50/training28-sub000/internal/cli"
	"github.com/Ebi50/training28-sub000/internal/logger"
	"github.com/Ebi50/training28-sub000/internal/sweep"
)

type SweepCmd struct {
	Daemon  bool `help:"Keep running and sweep on the configured cron schedule."`
	Verbose bool `short:"v" help:"Print the outcome of every athlete."`
}

func (c *SweepCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	sw := sweep.New(ctx.Store, cfg.PlanningConfig(), sweep.Config{
		Workers:       cfg.Sweep.Workers,
		RatePerSecond: cfg.Sweep.RatePerSecond,
		LookbackDays:  cfg.Sweep.LookbackDays,
	})

	if c.Daemon {
		sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Sweeping on %q (%s). Press Ctrl+C to stop.\n", cfg.Sweep.Schedule, cfg.Sweep.Timezone)
		return sw.Schedule(sigCtx, cfg.Sweep.Schedule, cfg.Sweep.Timezone, func(res sweep.Result, err error) {
			if err != nil {
				return
			}
			logger.Info("Sweep summary", "run", res.RunID, "updated", res.Updated, "skipped", res.Skipped, "failed", res.Failed)
		})
	}

	athletes, err := ctx.Store.ListAutoUpdateAthletes()
	if err != nil {
		return fmt.Errorf("failed to list athletes: %w", err)
	}
	if len(athletes) == 0 {
		fmt.Println("No athletes have auto-update enabled.")
		return nil
	}

	bar := progressbar.Default(int64(len(athletes)), "Sweeping")
	res, err := sw.Run(context.Background(), func(sweep.Outcome) {
		_ = bar.Add(1)
	})
	if err != nil {
		return err
	}
	_ = bar.Finish()

	printSweep(res, c.Verbose)
	if res.Failed > 0 {
		return fmt.Errorf("%d of %d athletes failed", res.Failed, res.Total)
	}
	return nil
}

func printSweep(res sweep.Result, verbose bool) {
	fmt.Printf("\nSweep %s: %d updated, %d skipped, %d failed (%s)\n",
		res.RunID[:8], res.Updated, res.Skipped, res.Failed, res.Finished.Sub(res.Started).Round(time.Millisecond))
	for _, o := range res.Outcomes {
		switch {
		case o.Status == sweep.StatusUpdated:
			fmt.Printf("  ✓ %-16s %s → %s rev %d\n", o.AthleteID, o.Reason, o.Week, o.Revision)
		case o.Status == sweep.StatusFailed:
			fmt.Printf("  ✗ %-16s %s\n", o.AthleteID, o.Reason)
		case verbose:
			fmt.Printf("  - %-16s %s\n", o.AthleteID, o.Reason)
		}
	}
}
