// Package schedule drives the daily summary tick.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultDailySpec fires the summary at 08:00 every day.
const DefaultDailySpec = "0 8 * * *"

// Job is invoked on each tick with the scheduled fire time.
type Job func(ctx context.Context, scheduledAt time.Time)

// Scheduler wraps a cron runner around a single daily job.
type Scheduler struct {
	cron *cron.Cron
}

// New registers the job under the given cron spec (standard five-field
// syntax). An empty spec uses the default.
func New(ctx context.Context, spec string, job Job) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultDailySpec
	}

	c := cron.New()
	entryID, err := c.AddFunc(spec, func() {
		job(ctx, time.Now())
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	slog.Info("Daily summary scheduled", "spec", spec, "entry_id", entryID)
	return &Scheduler{cron: c}, nil
}

// Start begins firing ticks in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
