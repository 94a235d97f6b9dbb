package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/herald-hq/herald/internal/common"
	"github.com/herald-hq/herald/internal/model"
)

func dailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Send the daily summary now",
		Long: `Aggregates the last 24 hours of documents and posts the daily summary to the
configured webhook immediately, outside the cron schedule.`,
		RunE: runDaily,
	}
}

func runDaily(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	evt := model.ScheduledEvent{SpaceID: a.cfg.SpaceID, ScheduledAt: time.Now()}
	result := a.handlers.DailySummary(ctx, evt, a.cfg.Notifications)

	switch {
	case result.Error != "":
		return common.NewUserError(
			"Could not send the daily summary. Check the webhook URL and platform API settings.",
			fmt.Errorf("daily summary failed: %s", result.Error),
		)
	case result.Skipped:
		cmd.Printf("Daily summary skipped: %s\n", result.Reason)
	case result.Stats != nil:
		cmd.Printf("Daily summary sent (%d processed, %d pending)\n", result.Stats.ProcessedCount, result.Stats.PendingCount)
	default:
		cmd.Println("Daily summary sent")
	}

	return nil
}
