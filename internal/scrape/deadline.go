package scrape

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// The pages mix English and German announcements, so both deadline
// spellings show up in listing text.
var deadlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`Deadline:\s*(\w+ \d{2},? \d{4})`),
	regexp.MustCompile(`Bewerbungsschluss:\s*(\d{2}\.\d{2}\.\d{4})`),
}

var kennNrRe = regexp.MustCompile(`Kenn-Nr\.\s*(\S+)`)

// ParseDeadline pulls an application deadline out of a listing entry.
// Returns nil when no parseable deadline is present.
func ParseDeadline(text string) *time.Time {
	for _, re := range deadlinePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		dateStr := m[1]

		var layouts []string
		if strings.Contains(dateStr, ".") {
			layouts = []string{"02.01.2006"}
		} else {
			layouts = []string{"January 02, 2006", "January 02 2006"}
		}

		for _, layout := range layouts {
			if t, err := time.Parse(layout, dateStr); err == nil {
				return &t
			}
		}
		logrus.Warnf("[scrape] failed to parse date: %s", dateStr)
	}
	return nil
}

// KennNr extracts the official reference number from listing text.
func KennNr(text string) string {
	if m := kennNrRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// FallbackID derives a stable id for ads without a Kenn-Nr. Ids must
// stay identical across runs so INSERT OR IGNORE dedup works.
func FallbackID(title string, deadline *time.Time) string {
	h := md5.New()
	h.Write([]byte(title))
	if deadline != nil {
		h.Write([]byte(deadline.Format("2006-01-02")))
	}
	return hex.EncodeToString(h.Sum(nil))
}
