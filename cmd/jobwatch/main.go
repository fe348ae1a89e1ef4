package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jobwatch/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "jobwatch",
	Short: "Watches the University of Potsdam job listing pages",
	Long: `jobwatch scrapes the configured job-listing pages, stores new
announcements (including the PDF full text) in a sqlite database and
records every change of that database in git history.`,
	SilenceUsage: true,
}

var flagConfig string

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config.yml (default: <data dir>/config.yml)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(secretCmd)
}

func main() {
	_ = godotenv.Load()
	configureLogging()

	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func configureLogging() {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	logrus.SetLevel(logrus.InfoLevel)
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if parsed, err := logrus.ParseLevel(strings.ToLower(lvl)); err == nil {
			logrus.SetLevel(parsed)
		} else {
			logrus.Warnf("invalid log level %q, defaulting to info", lvl)
		}
	}
}

// loadConfig resolves the data dir, bootstraps a user config on first
// run and returns the validated configuration.
func loadConfig() (config.Config, error) {
	dataDir := os.Getenv("JOBWATCH_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return config.Config{}, err
	}

	cfgPath := flagConfig
	if cfgPath == "" {
		p, err := config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			return config.Config{}, err
		}
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, err
	}
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = dataDir
	}

	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		logrus.Warnf("config: %s", w)
	}
	if err := res.Err(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
