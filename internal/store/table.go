package store

import (
	"context"
	"database/sql"
)

// Ad mirrors one row of job_ads.
type Ad struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	FullText  string `json:"fullText"`
	JobType   string `json:"jobType"`
	Deadline  string `json:"deadline"` // "2006-01-02" or ""
	PDFURL    string `json:"pdfUrl"`
	SourceURL string `json:"sourceUrl"`
	FirstSeen string `json:"firstSeen"` // RFC3339
}

type ListAdsOpts struct {
	JobType string // "" = all
	Limit   int
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS job_ads (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  full_text TEXT NOT NULL DEFAULT '',
  job_type TEXT NOT NULL,
  deadline TEXT NOT NULL DEFAULT '',
  pdf_url TEXT NOT NULL DEFAULT '',
  source_url TEXT NOT NULL DEFAULT '',
  first_seen TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_job_ads_job_type
ON job_ads(job_type);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_job_ads_first_seen
ON job_ads(first_seen DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

func ListAds(ctx context.Context, db *sql.DB, opts ListAdsOpts) ([]Ad, error) {
	if opts.Limit <= 0 {
		opts.Limit = 200
	}

	where := ""
	args := []any{}
	if opts.JobType != "" {
		where = "WHERE job_type = ?"
		args = append(args, opts.JobType)
	}
	args = append(args, opts.Limit)

	rows, err := db.QueryContext(ctx, `
SELECT id, title, job_type, deadline, pdf_url, source_url, first_seen
FROM job_ads
`+where+`
ORDER BY first_seen DESC, id
LIMIT ?;
`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Ad
	for rows.Next() {
		var a Ad
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.JobType,
			&a.Deadline,
			&a.PDFURL,
			&a.SourceURL,
			&a.FirstSeen,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// HasAd reports whether an ad id is already stored. Known ids are
// skipped before any PDF work.
func HasAd(ctx context.Context, db *sql.DB, id string) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM job_ads WHERE id = ? LIMIT 1;`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func CountAds(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_ads;`).Scan(&n)
	return n, err
}
