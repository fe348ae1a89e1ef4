package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jobwatch/internal/config"
	"jobwatch/internal/notify"
	"jobwatch/internal/runner"
	"jobwatch/internal/scheduler"
	"jobwatch/internal/secrets"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one batch now: scrape all targets, then commit on change",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return newRunner(cfg).RunBatch(ctx)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the batch daily at the configured time",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		r := newRunner(cfg)
		return scheduler.RunDaily(ctx, cfg.Schedule.DailyAt, cfg.Schedule.Timezone, "daily-batch", r.RunBatch)
	},
}

func newRunner(cfg config.Config) *runner.Runner {
	var notifier runner.AdNotifier
	if cfg.Notify.Telegram.Enabled {
		token, err := secrets.GetTelegramToken()
		if err != nil {
			logrus.Warnf("telegram disabled: %v", err)
		} else if n, err := notify.NewTelegramNotifier(token, cfg.Notify.Telegram.ChatID); err != nil {
			logrus.Warnf("telegram disabled: %v", err)
		} else {
			notifier = n
		}
	}
	return runner.New(cfg, notifier)
}
