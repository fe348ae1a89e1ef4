package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/sirupsen/logrus"
)

type Options struct {
	RepoDir     string
	Remote      string // empty = commit only, never push
	AuthorName  string
	AuthorEmail string
	Username    string // for token auth; defaults to "git"
	Token       string
}

// CommitIfChanged stages the given files and commits them under the
// bot identity. A clean tree after staging is a successful no-op; a
// failed push is a hard error.
func CommitIfChanged(ctx context.Context, opts Options, paths []string, message string) (committed bool, err error) {
	repo, err := git.PlainOpen(opts.RepoDir)
	if err != nil {
		return false, fmt.Errorf("open repo %s: %w", opts.RepoDir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("worktree: %w", err)
	}

	absRepo, err := filepath.Abs(opts.RepoDir)
	if err != nil {
		return false, err
	}

	rels := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return false, err
		}
		rel, err := filepath.Rel(absRepo, abs)
		if err != nil {
			return false, fmt.Errorf("path %s is outside repo %s: %w", p, opts.RepoDir, err)
		}
		rel = filepath.ToSlash(rel)
		if _, err := wt.Add(rel); err != nil {
			return false, fmt.Errorf("stage %s: %w", rel, err)
		}
		rels = append(rels, rel)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("status: %w", err)
	}
	if !anyStaged(status, rels) {
		logrus.Info("[git] nothing to commit")
		return false, nil
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  opts.AuthorName,
			Email: opts.AuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		if errors.Is(err, git.ErrEmptyCommit) {
			logrus.Info("[git] nothing to commit")
			return false, nil
		}
		return false, fmt.Errorf("commit: %w", err)
	}
	logrus.Infof("[git] committed %s", hash.String()[:8])

	if opts.Remote == "" {
		return true, nil
	}

	pushOpts := &git.PushOptions{RemoteName: opts.Remote}
	if opts.Token != "" {
		user := opts.Username
		if user == "" {
			user = "git"
		}
		pushOpts.Auth = &githttp.BasicAuth{Username: user, Password: opts.Token}
	}

	if err := repo.PushContext(ctx, pushOpts); err != nil {
		if errors.Is(err, git.NoErrAlreadyUpToDate) {
			logrus.Infof("[git] remote %s already up to date", opts.Remote)
			return true, nil
		}
		return true, fmt.Errorf("push to %s: %w", opts.Remote, err)
	}

	logrus.Infof("[git] pushed to %s", opts.Remote)
	return true, nil
}

// anyStaged reports whether one of the just-added paths has staged
// changes. Whole-tree cleanliness is the wrong check here: the repo
// usually holds untracked siblings (run lock, user config) that must
// not turn an unchanged artifact into a commit attempt.
func anyStaged(status git.Status, rels []string) bool {
	for _, rel := range rels {
		fs, ok := status[rel]
		if !ok {
			continue // unchanged tracked file
		}
		switch fs.Staging {
		case git.Unmodified, git.Untracked:
		default:
			return true
		}
	}
	return false
}
