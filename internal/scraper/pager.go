package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"fightfeed/eventworker/helpers"
	"fightfeed/eventworker/internal/schedule"
	"fightfeed/eventworker/logger"
)

// pageExtractor runs one adapter pass over a fetched document and returns
// the filtered events plus the number of candidate containers seen.
type pageExtractor func(doc *goquery.Document) ([]schedule.Event, int)

// defaultMaxPages bounds the pagination loop when the source never returns
// an empty page. The natural termination signal is still the empty page;
// this is only a safety valve against malformed sources.
const defaultMaxPages = 20

type pageState int

const (
	stateFetching pageState = iota
	stateDone
)

// fetchAllPages drives repeated fetch-extract cycles for a paged source.
// Page 1 is the bare URL; later pages get the page parameter appended. An
// empty page (zero containers) is the terminal signal. Page fetches are
// strictly sequential because each page's termination decision depends on
// the previous page's result.
func (s *BaseScraper) fetchAllPages(extract pageExtractor) ([]schedule.Event, error) {
	maxPages := s.Config.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	log := logger.ForScraper(s.Config.Name)

	var all []schedule.Event
	state := stateFetching
	for page := 1; state == stateFetching; page++ {
		doc, err := s.fetchDocument(helpers.PageURL(s.Config.URL, page))
		if err != nil {
			if page == 1 {
				return nil, err
			}
			// A failed later page is reported once and treated as empty.
			log.Warn().Err(err).Int("page", page).Msg("Page fetch failed, treating as empty page")
			state = stateDone
			break
		}

		events, containers := extract(doc)
		if containers == 0 {
			state = stateDone
			break
		}

		all = append(all, events...)
		if page >= maxPages {
			log.Warn().Int("page", page).Msg("Reached page limit before an empty page")
			state = stateDone
		}
	}

	return all, nil
}
