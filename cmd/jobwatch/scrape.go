package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jobwatch/internal/config"
	"jobwatch/internal/scrape"
	"jobwatch/internal/store"
)

// scrapeCmd is the single-invocation surface: one input (URL or local
// HTML file), one output database, no git stage. This matches the CLI
// of the script the batch used to shell out to.
var scrapeCmd = &cobra.Command{
	Use:   "scrape INPUT OUTPUT",
	Short: "Scrape one listing page (URL or local HTML file) into a database",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := args[0], args[1]

		cfg, _ := config.NormalizeAndValidate(config.Config{
			Targets: []config.Target{{Name: "ad-hoc", URL: input}},
		})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := store.Open(output)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.Migrate(db.Pool); err != nil {
			return err
		}

		s := scrape.New(cfg)
		added, _, err := s.ProcessTarget(ctx, db.Pool, cfg.Targets[0])
		if err != nil {
			return err
		}

		logrus.Infof("[scrape] done added=%d db=%s", added, output)
		return nil
	},
}
