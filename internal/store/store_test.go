package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobwatch/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "job_ads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db.Pool))
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db.Pool))

	var v int
	require.NoError(t, db.Pool.QueryRow(`PRAGMA user_version;`).Scan(&v))
	assert.Equal(t, 1, v)
}

func TestInsertAdIgnore(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	deadline := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	ad := domain.Ad{
		ID:        "123/2024",
		Title:     "Research Software Engineer (w/m/d)",
		FullText:  "full announcement text",
		JobType:   "Dauerstellen akademisches Personal",
		Deadline:  &deadline,
		PDFURL:    "https://www.uni-potsdam.de/docs/ausschreibung-123.pdf",
		SourceURL: "https://www.uni-potsdam.de/de/stellen",
	}

	added, err := InsertAdIgnore(ctx, db.Pool, ad)
	require.NoError(t, err)
	assert.True(t, added)

	// same id again: kept, not replaced
	ad.Title = "changed title"
	added, err = InsertAdIgnore(ctx, db.Pool, ad)
	require.NoError(t, err)
	assert.False(t, added)

	got, err := GetAd(ctx, db.Pool, "123/2024")
	require.NoError(t, err)
	assert.Equal(t, "Research Software Engineer (w/m/d)", got.Title)
	assert.Equal(t, "2025-01-15", got.Deadline)
	assert.Equal(t, "full announcement text", got.FullText)

	known, err := HasAd(ctx, db.Pool, "123/2024")
	require.NoError(t, err)
	assert.True(t, known)

	known, err = HasAd(ctx, db.Pool, "does-not-exist")
	require.NoError(t, err)
	assert.False(t, known)
}

func TestInsertAdMissingID(t *testing.T) {
	db := openTestDB(t)

	_, err := InsertAdIgnore(context.Background(), db.Pool, domain.Ad{Title: "nameless"})
	assert.Error(t, err)
}

func TestListAds(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	ads := []domain.Ad{
		{ID: "a1", Title: "Professor", JobType: "akademisch"},
		{ID: "a2", Title: "Bibliothekar/in", JobType: "verwaltung"},
		{ID: "a3", Title: "Admin", JobType: "verwaltung"},
	}
	for _, a := range ads {
		_, err := InsertAdIgnore(ctx, db.Pool, a)
		require.NoError(t, err)
	}

	all, err := ListAds(ctx, db.Pool, ListAdsOpts{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	verwaltung, err := ListAds(ctx, db.Pool, ListAdsOpts{JobType: "verwaltung"})
	require.NoError(t, err)
	assert.Len(t, verwaltung, 2)

	limited, err := ListAds(ctx, db.Pool, ListAdsOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	n, err := CountAds(ctx, db.Pool)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
