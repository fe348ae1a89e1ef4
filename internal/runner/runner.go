package runner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"

	"jobwatch/internal/config"
	"jobwatch/internal/domain"
	"jobwatch/internal/gitrepo"
	"jobwatch/internal/scrape"
	"jobwatch/internal/secrets"
	"jobwatch/internal/store"
)

// ErrRunInProgress means another batch holds the run lock.
var ErrRunInProgress = errors.New("another run is already in progress")

// AdNotifier receives each newly stored ad. Notification failures are
// logged, never fatal.
type AdNotifier interface {
	SendAd(domain.Ad) error
}

// Runner executes one batch: every configured target in order, then
// the commit stage. The invoke/commit seams exist for tests.
type Runner struct {
	cfg      config.Config
	notifier AdNotifier

	invoke func(ctx context.Context, db *sql.DB, target config.Target) (int, []domain.Ad, error)
	commit func(ctx context.Context, paths []string, message string) (bool, error)
}

func New(cfg config.Config, notifier AdNotifier) *Runner {
	s := scrape.New(cfg)

	r := &Runner{
		cfg:      cfg,
		notifier: notifier,
	}
	r.invoke = s.ProcessTarget
	r.commit = func(ctx context.Context, paths []string, message string) (bool, error) {
		return gitrepo.CommitIfChanged(ctx, gitrepo.Options{
			RepoDir:     cfg.Git.RepoDir,
			Remote:      cfg.Git.Remote,
			AuthorName:  cfg.Git.AuthorName,
			AuthorEmail: cfg.Git.AuthorEmail,
			Username:    cfg.Git.Username,
			Token:       secrets.GetGitToken(),
		}, paths, message)
	}
	return r
}

// RunBatch runs all targets strictly in config order. The first
// scrape failure aborts the run before the commit stage, so a failed
// invocation is never masked by a successful commit.
func (r *Runner) RunBatch(ctx context.Context) error {
	lock := flock.New(r.cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return ErrRunInProgress
	}
	defer func() { _ = lock.Unlock() }()

	started := time.Now()

	totalAdded, err := r.scrapeAll(ctx)
	if err != nil {
		return err
	}

	if r.cfg.Git.Enabled {
		msg := fmt.Sprintf("Update job ads (%s)", time.Now().Format("2006-01-02"))
		committed, err := r.commit(ctx, []string{r.cfg.DBPath()}, msg)
		if err != nil {
			return fmt.Errorf("commit stage: %w", err)
		}
		if !committed {
			logrus.Info("[runner] database unchanged, nothing committed")
		}
	}

	logrus.Infof("[runner] batch done added=%d took=%s", totalAdded, time.Since(started).Round(time.Millisecond))
	return nil
}

// scrapeAll owns the db handle for the scrape stage; it is closed
// before the commit stage so the sqlite file on disk is complete.
func (r *Runner) scrapeAll(ctx context.Context) (int, error) {
	db, err := store.Open(r.cfg.DBPath())
	if err != nil {
		return 0, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		return 0, fmt.Errorf("migrate: %w", err)
	}

	totalAdded := 0
	for _, target := range r.cfg.Targets {
		logrus.Infof("[runner] processing target %s (%s)", target.Name, target.URL)

		added, newAds, err := r.invoke(ctx, db.Pool, target)
		if err != nil {
			return totalAdded, fmt.Errorf("scrape target %s: %w", target.Name, err)
		}
		totalAdded += added

		if r.notifier != nil {
			for _, ad := range newAds {
				if nerr := r.notifier.SendAd(ad); nerr != nil {
					logrus.Errorf("[notify] %v", nerr)
				}
			}
		}
	}

	return totalAdded, nil
}
