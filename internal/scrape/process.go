package scrape

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"jobwatch/internal/config"
	"jobwatch/internal/domain"
	"jobwatch/internal/store"
)

// ProcessTarget is one scrape invocation: parse the listing page,
// hydrate the PDFs of ads not yet stored and insert them. Targets are
// invoked one after another by the runner; only the PDF fetches within
// a single target run concurrently.
func (s *Scraper) ProcessTarget(ctx context.Context, db *sql.DB, target config.Target) (added int, newAds []domain.Ad, err error) {
	ads, err := s.FetchListing(ctx, target.URL, target.Name)
	if err != nil {
		return 0, nil, err
	}

	// Drop ads we already have before touching any PDF.
	var fresh []domain.Ad
	for _, ad := range ads {
		known, err := store.HasAd(ctx, db, ad.ID)
		if err != nil {
			return 0, nil, err
		}
		if known {
			logrus.Debugf("[scrape] job ad already in database: %s", ad.ID)
			continue
		}
		fresh = append(fresh, ad)
	}

	// Hydrate full text. A failed PDF drops the ad from this run; it
	// was never inserted, so the next run picks it up again.
	hydrated := make([]bool, len(fresh))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range fresh {
		i := i
		g.Go(func() error {
			text, perr := s.FetchPDFText(gctx, fresh[i].PDFURL)
			if perr != nil {
				logrus.Errorf("[pdf] error processing %s: %v", fresh[i].ID, perr)
				return nil // best-effort per ad
			}
			fresh[i].FullText = text
			hydrated[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, nil, err
	}

	for i, ad := range fresh {
		if !hydrated[i] {
			continue
		}
		ok, ierr := store.InsertAdIgnore(ctx, db, ad)
		if ierr != nil {
			return added, newAds, ierr
		}
		if ok {
			logrus.Infof("[scrape] inserted new job ad: %s - %s", ad.ID, ad.Title)
			added++
			newAds = append(newAds, ad)
		}
	}

	return added, newAds, nil
}
