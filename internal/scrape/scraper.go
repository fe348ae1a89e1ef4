package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"jobwatch/internal/config"
	"jobwatch/internal/domain"
	"jobwatch/internal/scrape/util"
)

// Base URL assumed when scraping a local HTML file instead of a live
// page (used for offline testing against saved snapshots).
const localFileBaseURL = "https://www.uni-potsdam.de"

type Scraper struct {
	hc      *http.Client
	limiter *util.HostLimiter
	ua      string
	workers int
}

func New(cfg config.Config) *Scraper {
	return &Scraper{
		hc: &http.Client{
			Timeout: time.Duration(cfg.Scrape.RequestTimeoutSeconds) * time.Second,
		},
		limiter: util.NewHostLimiter(cfg.Scrape.RatePerSecond, cfg.Scrape.Burst),
		ua:      cfg.Scrape.UserAgent,
		workers: cfg.Scrape.PDFWorkers,
	}
}

// FetchListing loads one listing page (URL or local HTML file) and
// parses its job ads. fallbackType is used when the page carries no h1.
func (s *Scraper) FetchListing(ctx context.Context, input, fallbackType string) ([]domain.Ad, error) {
	body, baseURL, err := s.getContent(ctx, input)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse listing html: %w", err)
	}

	return parseListing(doc, baseURL, input, fallbackType), nil
}

func (s *Scraper) getContent(ctx context.Context, input string) (io.ReadCloser, string, error) {
	if strings.HasPrefix(input, "http:") || strings.HasPrefix(input, "https:") {
		if err := s.limiter.WaitURL(ctx, input); err != nil {
			return nil, "", err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, input, nil)
		if err != nil {
			return nil, "", err
		}
		req.Header.Set("User-Agent", s.ua)

		res, err := s.hc.Do(req)
		if err != nil {
			return nil, "", fmt.Errorf("get listing: %w", err)
		}
		if res.StatusCode >= 400 {
			res.Body.Close()
			return nil, "", fmt.Errorf("listing status %d for %s", res.StatusCode, input)
		}
		return res.Body, input, nil
	}

	f, err := os.Open(input)
	if err != nil {
		return nil, "", err
	}
	return f, localFileBaseURL, nil
}

func parseListing(doc *goquery.Document, baseURL, sourceURL, fallbackType string) []domain.Ad {
	jobType := util.CleanText(doc.Find("h1").First().Text())
	if jobType == "" {
		jobType = fallbackType
	}
	logrus.Infof("[scrape] job type found: %s", jobType)

	container := doc.Find("div.up-content-link-box").First()
	if container.Length() == 0 {
		logrus.Warn("[scrape] could not find the job listings container")
		return nil
	}

	var ads []domain.Ad
	container.Find("li").Each(func(_ int, li *goquery.Selection) {
		link := li.Find("a.up-document-link").First()
		if link.Length() == 0 {
			return
		}

		title := util.CleanText(link.Text())
		href, _ := link.Attr("href")
		pdfURL := util.AbsoluteURL(baseURL, href)

		entryText := util.CleanText(li.Text())
		deadline := ParseDeadline(entryText)
		if deadline == nil {
			logrus.Warnf("[scrape] no valid deadline found in: %s", entryText)
		}

		id := KennNr(entryText)
		if id == "" {
			id = FallbackID(title, deadline)
		}

		logrus.Infof("[scrape] found job ad: id=%s title=%q deadline=%s", id, title, deadlineLabel(deadline))
		ads = append(ads, domain.Ad{
			ID:        id,
			Title:     title,
			PDFURL:    pdfURL,
			JobType:   jobType,
			Deadline:  deadline,
			SourceURL: sourceURL,
		})
	})

	logrus.Infof("[scrape] total job ads found: %d", len(ads))
	return ads
}

func deadlineLabel(t *time.Time) string {
	if t == nil {
		return "none"
	}
	return t.Format("2006-01-02")
}
