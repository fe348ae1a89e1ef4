package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Target is one listing page the batch scrapes. Targets run in config
// order, one after another.
type Target struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
		DBFile  string `yaml:"db_file"`
	} `yaml:"app"`

	Targets []Target `yaml:"targets"`

	Scrape struct {
		RequestTimeoutSeconds int     `yaml:"request_timeout_seconds"`
		RatePerSecond         float64 `yaml:"rate_per_second"`
		Burst                 int     `yaml:"burst"`
		PDFWorkers            int     `yaml:"pdf_workers"`
		UserAgent             string  `yaml:"user_agent"`
	} `yaml:"scrape"`

	Schedule struct {
		DailyAt  string `yaml:"daily_at"` // "HH:MM", local to Timezone
		Timezone string `yaml:"timezone"`
	} `yaml:"schedule"`

	Git struct {
		Enabled     bool   `yaml:"enabled"`
		RepoDir     string `yaml:"repo_dir"`
		Remote      string `yaml:"remote"` // empty remote = commit only, no push
		AuthorName  string `yaml:"author_name"`
		AuthorEmail string `yaml:"author_email"`
		Username    string `yaml:"username"`
	} `yaml:"git"`

	Notify struct {
		Telegram struct {
			Enabled bool  `yaml:"enabled"`
			ChatID  int64 `yaml:"chat_id"`
		} `yaml:"telegram"`
	} `yaml:"notify"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// DBPath is the shared output artifact all targets write into.
func (c Config) DBPath() string {
	return filepath.Join(c.App.DataDir, c.App.DBFile)
}

// LockPath guards against overlapping batch runs.
func (c Config) LockPath() string {
	return filepath.Join(c.App.DataDir, "jobwatch.lock")
}
