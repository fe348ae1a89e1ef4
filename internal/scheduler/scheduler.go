package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"

	"jobwatch/internal/config"
)

type Task func(ctx context.Context) error

// RunDaily blocks, running task every day at dailyAt (local to tz)
// until ctx is cancelled. Singleton mode: a still-running batch is
// never overlapped by the next tick.
func RunDaily(ctx context.Context, dailyAt, tz, name string, task Task) error {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", tz, err)
	}

	hour, minute, ok := config.DailyAtParts(dailyAt)
	if !ok {
		return fmt.Errorf("parse daily_at %q: want HH:MM", dailyAt)
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return err
	}

	job, err := s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), uint(minute), 0))),
		gocron.NewTask(func() {
			if err := task(ctx); err != nil {
				logrus.Errorf("[%s] error: %v", name, err)
			}
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}

	s.Start()
	if next, err := job.NextRun(); err == nil {
		logrus.Infof("[%s] scheduled daily at %s %s, next run %s", name, dailyAt, tz, next.Format(time.RFC3339))
	}

	<-ctx.Done()
	return s.Shutdown()
}
