package gitrepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepoWithFile(t *testing.T) (dir, file string) {
	t.Helper()

	dir = t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	file = filepath.Join(dir, "job_ads.db")
	require.NoError(t, os.WriteFile(file, []byte("v1"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("job_ads.db")
	require.NoError(t, err)
	_, err = wt.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "init", Email: "init@example.org", When: time.Now()},
	})
	require.NoError(t, err)

	return dir, file
}

func botOptions(dir string) Options {
	return Options{
		RepoDir:     dir,
		AuthorName:  "jobwatch-bot",
		AuthorEmail: "jobwatch-bot@users.noreply.github.com",
		// no Remote: commit only
	}
}

func TestCommitIfChangedNoop(t *testing.T) {
	dir, file := initRepoWithFile(t)

	committed, err := CommitIfChanged(context.Background(), botOptions(dir), []string{file}, "Update job ads")
	require.NoError(t, err)
	assert.False(t, committed)
}

func TestCommitIfChangedNoopWithUntrackedSiblings(t *testing.T) {
	dir, file := initRepoWithFile(t)

	// the default layout keeps data dir == repo dir, so the run lock
	// and the bootstrapped user config sit next to the database
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jobwatch.lock"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("app:\n"), 0o644))

	committed, err := CommitIfChanged(context.Background(), botOptions(dir), []string{file}, "Update job ads")
	require.NoError(t, err)
	assert.False(t, committed)
}

func TestCommitIfChangedCommits(t *testing.T) {
	dir, file := initRepoWithFile(t)
	require.NoError(t, os.WriteFile(file, []byte("v2"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jobwatch.lock"), nil, 0o644))

	committed, err := CommitIfChanged(context.Background(), botOptions(dir), []string{file}, "Update job ads")
	require.NoError(t, err)
	assert.True(t, committed)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)

	assert.Equal(t, "Update job ads", commit.Message)
	assert.Equal(t, "jobwatch-bot", commit.Author.Name)
	assert.Equal(t, "jobwatch-bot@users.noreply.github.com", commit.Author.Email)

	// the untracked sibling is not swept into the commit
	_, err = commit.File("jobwatch.lock")
	assert.Error(t, err)

	// a second run with no further change is a no-op again
	committed, err = CommitIfChanged(context.Background(), botOptions(dir), []string{file}, "Update job ads")
	require.NoError(t, err)
	assert.False(t, committed)
}

func TestCommitIfChangedMissingRepo(t *testing.T) {
	dir := t.TempDir() // not a git repo

	_, err := CommitIfChanged(context.Background(), botOptions(dir), []string{filepath.Join(dir, "x")}, "msg")
	assert.Error(t, err)
}
