package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobwatch/internal/domain"
)

// InsertAdIgnore writes one ad, keeping any existing row with the same
// id. Returns whether a new row was actually added.
func InsertAdIgnore(ctx context.Context, db *sql.DB, a domain.Ad) (added bool, err error) {
	if a.ID == "" {
		return false, fmt.Errorf("insert ad: missing id")
	}

	res, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO job_ads (id, title, full_text, job_type, deadline, pdf_url, source_url, first_seen)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		a.ID,
		a.Title,
		a.FullText,
		a.JobType,
		a.DeadlineString(),
		a.PDFURL,
		a.SourceURL,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert ad: %w", err)
	}

	n, _ := res.RowsAffected()
	return n > 0, nil
}

// GetAd returns the stored row or sql.ErrNoRows.
func GetAd(ctx context.Context, db *sql.DB, id string) (Ad, error) {
	var a Ad
	err := db.QueryRowContext(ctx, `
SELECT id, title, full_text, job_type, deadline, pdf_url, source_url, first_seen
FROM job_ads
WHERE id = ?;`, id).Scan(
		&a.ID,
		&a.Title,
		&a.FullText,
		&a.JobType,
		&a.Deadline,
		&a.PDFURL,
		&a.SourceURL,
		&a.FirstSeen,
	)
	return a, err
}
