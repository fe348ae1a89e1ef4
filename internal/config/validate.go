package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return fmt.Errorf("config validation failed:\n- %s", strings.Join(v.Errors, "\n- "))
}

var dailyAtRe = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// NormalizeAndValidate fills defaults, trims target fields and checks
// everything the batch relies on before a run starts.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.App.DataDir == "" {
		out.App.DataDir = "."
	}
	if out.App.DBFile == "" {
		out.App.DBFile = "job_ads.db"
	}

	// ---- Scrape defaults ----

	if out.Scrape.RequestTimeoutSeconds <= 0 {
		out.Scrape.RequestTimeoutSeconds = 20
	}
	if out.Scrape.RatePerSecond <= 0 {
		out.Scrape.RatePerSecond = 1.0
	}
	if out.Scrape.Burst <= 0 {
		out.Scrape.Burst = 2
	}
	if out.Scrape.PDFWorkers <= 0 {
		out.Scrape.PDFWorkers = 3
	}
	if strings.TrimSpace(out.Scrape.UserAgent) == "" {
		out.Scrape.UserAgent = "jobwatch/1.0 (+local)"
	}

	// ---- Targets ----

	if len(out.Targets) == 0 {
		res.addErr("targets is empty; nothing to scrape")
	}
	seen := map[string]bool{}
	for i := range out.Targets {
		t := &out.Targets[i]
		t.Name = strings.TrimSpace(t.Name)
		t.URL = strings.TrimSpace(t.URL)
		if t.Name == "" {
			res.addErr("targets[%d].name is required", i)
		}
		if t.URL == "" {
			res.addErr("targets[%d].url is required", i)
		}
		if seen[t.URL] && t.URL != "" {
			res.addWarn("duplicate target url: %q", t.URL)
		}
		seen[t.URL] = true
	}

	// ---- Schedule ----

	if out.Schedule.DailyAt == "" {
		out.Schedule.DailyAt = "06:30"
	}
	if !dailyAtRe.MatchString(out.Schedule.DailyAt) {
		res.addErr("schedule.daily_at must be HH:MM, got %q", out.Schedule.DailyAt)
	}
	if out.Schedule.Timezone == "" {
		out.Schedule.Timezone = "Europe/Berlin"
	}
	if _, err := time.LoadLocation(out.Schedule.Timezone); err != nil {
		res.addErr("schedule.timezone %q: %v", out.Schedule.Timezone, err)
	}

	// ---- Git ----

	if out.Git.Enabled {
		if out.Git.RepoDir == "" {
			out.Git.RepoDir = "."
		}
		if strings.TrimSpace(out.Git.AuthorName) == "" {
			res.addErr("git.author_name is required when git.enabled=true")
		}
		if strings.TrimSpace(out.Git.AuthorEmail) == "" {
			res.addErr("git.author_email is required when git.enabled=true")
		}
		if out.Git.Remote == "" {
			res.addWarn("git.remote is empty; changes will be committed but never pushed")
		}
	}

	// ---- Notify ----

	if out.Notify.Telegram.Enabled && out.Notify.Telegram.ChatID == 0 {
		res.addErr("notify.telegram.chat_id is required when telegram is enabled")
	}

	return out, res
}

// DailyAtParts splits an "HH:MM" schedule into hour and minute; ok is
// false when the string is not a valid time of day.
func DailyAtParts(dailyAt string) (hour, minute int, ok bool) {
	m := dailyAtRe.FindStringSubmatch(dailyAt)
	if m == nil {
		return 0, 0, false
	}
	fmt.Sscanf(m[1], "%d", &hour)
	fmt.Sscanf(m[2], "%d", &minute)
	return hour, minute, true
}
