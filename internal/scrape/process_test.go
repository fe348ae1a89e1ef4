package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobwatch/internal/config"
	"jobwatch/internal/store"
)

// listingServer serves one listing page with two ads and their PDFs.
// The second PDF fails with 500 until healed; fetch counts are kept
// per path.
type listingServer struct {
	*httptest.Server

	mu      sync.Mutex
	fetches map[string]int
	badPDF  bool
}

func newListingServer(t *testing.T) *listingServer {
	t.Helper()

	ls := &listingServer{fetches: make(map[string]int), badPDF: true}
	ls.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ls.mu.Lock()
		ls.fetches[r.URL.Path]++
		bad := ls.badPDF
		ls.mu.Unlock()

		switch r.URL.Path {
		case "/listing":
			fmt.Fprint(w, `<html><body>
<h1>IT und Technik</h1>
<div class="up-content-link-box"><ul>
<li><a class="up-document-link" href="/pdf/ok.pdf">Systemadministrator/in (w/m/d)</a> Kenn-Nr. 100/2025 Deadline: March 01, 2025</li>
<li><a class="up-document-link" href="/pdf/bad.pdf">Netzwerktechniker/in (w/m/d)</a> Kenn-Nr. 101/2025 Bewerbungsschluss: 15.03.2025</li>
</ul></div>
</body></html>`)
		case "/pdf/ok.pdf":
			fmt.Fprint(w, "ok announcement text")
		case "/pdf/bad.pdf":
			if bad {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			fmt.Fprint(w, "bad announcement text")
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ls.Close)
	return ls
}

func (ls *listingServer) heal() {
	ls.mu.Lock()
	ls.badPDF = false
	ls.mu.Unlock()
}

func (ls *listingServer) count(path string) int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.fetches[path]
}

// The downloads in this test are plain text, not real PDFs, so the
// extraction step just reads the temp file back.
func stubExtraction(t *testing.T) {
	t.Helper()
	orig := extractText
	extractText = func(path string) (string, error) {
		b, err := os.ReadFile(path)
		return string(b), err
	}
	t.Cleanup(func() { extractText = orig })
}

func TestProcessTargetSkipsFailedPDFAndRetriesNextRun(t *testing.T) {
	stubExtraction(t)
	srv := newListingServer(t)
	ctx := context.Background()

	db, err := store.Open(filepath.Join(t.TempDir(), "job_ads.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, store.Migrate(db.Pool))

	target := config.Target{Name: "it", URL: srv.URL + "/listing"}
	raw := config.Config{Targets: []config.Target{target}}
	raw.Scrape.RatePerSecond = 100 // keep the polite limiter out of the test's way
	raw.Scrape.Burst = 10
	cfg, res := config.NormalizeAndValidate(raw)
	require.NoError(t, res.Err())
	s := New(cfg)

	// First run: the ad with the broken PDF is skipped, not inserted.
	added, newAds, err := s.ProcessTarget(ctx, db.Pool, target)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	require.Len(t, newAds, 1)
	assert.Equal(t, "100/2025", newAds[0].ID)
	assert.Equal(t, "ok announcement text", newAds[0].FullText)

	known, err := store.HasAd(ctx, db.Pool, "101/2025")
	require.NoError(t, err)
	assert.False(t, known, "ad with failed PDF must stay out of the database")

	// Second run with the PDF healed: only the missing ad is added.
	srv.heal()
	added, newAds, err = s.ProcessTarget(ctx, db.Pool, target)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	require.Len(t, newAds, 1)
	assert.Equal(t, "101/2025", newAds[0].ID)

	got, err := store.GetAd(ctx, db.Pool, "101/2025")
	require.NoError(t, err)
	assert.Equal(t, "bad announcement text", got.FullText)
	assert.Equal(t, "2025-03-15", got.Deadline)

	// Dedup happens before any PDF work: the stored ad's PDF was
	// fetched once across both runs.
	assert.Equal(t, 1, srv.count("/pdf/ok.pdf"))

	// Third run: everything known, nothing fetched or added.
	added, newAds, err = s.ProcessTarget(ctx, db.Pool, target)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Empty(t, newAds)
	assert.Equal(t, 1, srv.count("/pdf/ok.pdf"))
}
