package scrape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"
)

var extractText = extractPDFText

// FetchPDFText downloads the announcement PDF and extracts its plain
// text. The library wants a seekable file, so the download goes
// through a temp file.
func (s *Scraper) FetchPDFText(ctx context.Context, pdfURL string) (string, error) {
	logrus.Infof("[pdf] processing %s", pdfURL)

	if err := s.limiter.WaitURL(ctx, pdfURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", s.ua)

	res, err := s.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("get pdf: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return "", fmt.Errorf("pdf status %d for %s", res.StatusCode, pdfURL)
	}

	tmp, err := os.CreateTemp("", "jobwatch-*.pdf")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, res.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("download pdf: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	text, err := extractText(tmpPath)
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	logrus.Infof("[pdf] extracted %d characters", len(text))
	return text, nil
}

func extractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	rd, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rd); err != nil {
		return "", err
	}
	return buf.String(), nil
}
