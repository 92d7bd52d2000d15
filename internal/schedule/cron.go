package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Cron runs tasks on a fixed interval. SingletonMode keeps a slow run from
// overlapping with the next tick.
type Cron struct {
	scheduler *gocron.Scheduler
	timeout   time.Duration
}

func NewCron(loc *time.Location, timeout time.Duration) *Cron {
	return &Cron{
		scheduler: gocron.NewScheduler(loc),
		timeout:   timeout,
	}
}

func (c *Cron) Every(minutes int, task Task) error {
	_, err := c.scheduler.Every(minutes).Minutes().SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		slog.Info("running scheduled task", "task", task.Name())
		if err := task.Run(ctx); err != nil {
			slog.Error("scheduled task failed", "task", task.Name(), "error", err)
		}
	})
	return err
}

func (c *Cron) Start() {
	c.scheduler.StartAsync()
}

func (c *Cron) Stop() {
	c.scheduler.Stop()
}
