package sync

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler fires the sync job once a day at a fixed hour.
type Scheduler struct {
	job    *Job
	hour   int
	logger *slog.Logger
}

func NewScheduler(job *Job, hour int, logger *slog.Logger) *Scheduler {
	if hour < 0 || hour > 23 {
		hour = 12
	}
	return &Scheduler{job: job, hour: hour, logger: logger}
}

// Start blocks until the context is cancelled, running the job at the
// configured hour each day. Shutdown means "stop scheduling new runs"; an
// in-flight run is never aborted.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("sync scheduler started", "hour", s.hour)

	for {
		wait := time.Until(s.nextRun(time.Now()))
		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("sync scheduler stopping")
			return
		case <-timer.C:
			s.job.Run(ctx, "schedule")
		}
	}
}

// nextRun returns the next occurrence of the configured hour after now.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
