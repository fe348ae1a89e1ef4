package domain

import "time"

// Ad is one job announcement scraped from a listing page. The full
// announcement lives in a linked PDF; FullText is empty until the PDF
// has been fetched and extracted.
type Ad struct {
	ID        string // Kenn-Nr. when present, md5 fallback otherwise
	Title     string
	PDFURL    string
	JobType   string // listing page h1
	Deadline  *time.Time
	FullText  string
	SourceURL string
}

// DeadlineString renders the deadline the way the store keeps it.
func (a Ad) DeadlineString() string {
	if a.Deadline == nil {
		return ""
	}
	return a.Deadline.Format("2006-01-02")
}
