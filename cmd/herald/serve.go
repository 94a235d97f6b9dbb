package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/herald-hq/herald/internal/config"
	"github.com/herald-hq/herald/internal/model"
	"github.com/herald-hq/herald/internal/schedule"
	"github.com/herald-hq/herald/internal/server"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the event server and daily summary scheduler",
		Long: `Starts the HTTP server that receives document events from the platform and
the cron scheduler that posts the daily activity summary. Runs until
interrupted.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := schedule.New(ctx, a.cfg.DailyCron, func(ctx context.Context, scheduledAt time.Time) {
		evt := model.ScheduledEvent{SpaceID: a.cfg.SpaceID, ScheduledAt: scheduledAt}
		result := a.handlers.DailySummary(ctx, evt, a.cfg.Notifications)
		logResult("Daily summary run finished", result)
	})
	if err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:              a.cfg.Listen,
		Handler:           server.New(a.handlers, config.NewStaticSettings(a.cfg.Notifications)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Event server listening", "addr", a.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("event server failed: %w", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down event server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("event server shutdown failed: %w", err)
		}
	}

	return nil
}

func logResult(msg string, result model.HandlerResult) {
	switch {
	case result.Error != "":
		slog.Error(msg, "kind", result.Kind, "error", result.Error)
	case result.Skipped:
		slog.Info(msg, "kind", result.Kind, "skipped", true, "reason", result.Reason)
	default:
		slog.Info(msg, "kind", result.Kind, "success", result.Success)
	}
}
