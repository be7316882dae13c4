// Package reminder drives the periodic interview reminder sweep inside the
// server process.
package reminder

import (
	"context"
	"log"
	"time"
)

type Sweeper interface {
	SweepReminders(ctx context.Context, now time.Time) (int, error)
}

type Runner struct {
	sweeper  Sweeper
	interval time.Duration
	logger   *log.Logger
}

func NewRunner(sweeper Sweeper, interval time.Duration, logger *log.Logger) *Runner {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{sweeper: sweeper, interval: interval, logger: logger}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	r.sweep(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Runner) sweep(ctx context.Context) {
	sent, err := r.sweeper.SweepReminders(ctx, time.Now())
	if err != nil {
		r.logger.Printf("[Reminder] Sweep failed: %v", err)
		return
	}
	if sent > 0 {
		r.logger.Printf("[Reminder] Sweep sent %d reminder(s)", sent)
	}
}
