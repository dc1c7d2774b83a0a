package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Scheduler runs periodic rebuilds alongside the file watcher, catching
// asset changes that do not touch the declaration file.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a stopped scheduler.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// ScheduleRescan runs fn every interval until the scheduler stops. Runs never
// overlap; a slow run pushes the next one back.
func (s *Scheduler) ScheduleRescan(ctx context.Context, interval time.Duration, fn ReloadFunc) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("rescan interval must be positive, got %s", interval)
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}
			slog.Debug("Periodic rescan", slog.Duration("interval", interval))
			if err := fn(ctx); err != nil {
				slog.Error("Periodic rescan failed", logfields.Error(err))
			}
		}),
		gocron.WithName("rescan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create rescan job: %w", err)
	}
	return job.ID().String(), nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Stop shuts the scheduler down and waits for running jobs.
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}
