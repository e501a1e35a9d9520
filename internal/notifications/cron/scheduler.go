package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/collabhub/project-match/internal/logging"
)

// Purger removes read notifications older than retention.
type Purger interface {
	Purge(ctx context.Context, retention time.Duration) (int64, error)
}

// Scheduler runs the notification retention purge on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	purger    Purger
	retention time.Duration
	timeout   time.Duration
}

func NewScheduler(purger Purger, retentionDays int) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		purger:    purger,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		timeout:   time.Minute,
	}
}

// Start registers the purge job on spec (six fields, with seconds) and starts
// the scheduler.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return fmt.Errorf("invalid purge schedule %q: %w", spec, err)
	}
	s.cron.Start()
	logging.NewLogger(context.Background()).LogInfof("Scheduler", "retention purge scheduled (%s, keep %s)", spec, s.retention)
	return nil
}

// Stop waits for a running purge to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce purges now.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.purger.Purge(ctx, s.retention); err != nil {
		logging.NewLogger(ctx).LogError("Purge", err)
	}
}
