package scraper

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"fightfeed/eventworker/internal/schedule"
	"fightfeed/eventworker/logger"
	"fightfeed/eventworker/services/cache"
)

// Selectors for listing-style pages (fightcenter markup). The bout-toggler
// attribute is the structural marker for one event card.
const (
	listingContainerSelector     = `div[data-controller="bout-toggler"]`
	listingNameStrictSelector    = `.promotion a[href*="/fightcenter/events/"]`
	listingNameLooseSelector     = `.promotion a`
	listingDateSpanSelector      = `.promotion span`
	listingGeographySelector     = `.geography`
	listingGeographySpanSelector = `.geography span`
)

// ListingScraper extracts events from listing pages made of repeated event
// cards. These sources spread their result set over numbered pages.
type ListingScraper struct {
	BaseScraper
}

// NewListingScraper creates a new listing scraper
func NewListingScraper(config SourceConfig, cacheSvc cache.CacheService) *ListingScraper {
	return &ListingScraper{
		BaseScraper: BaseScraper{
			Config:    config,
			CacheSvc:  cacheSvc,
			BlockTime: time.Duration(config.BlockTime) * time.Second,
		},
	}
}

// FetchEvents fetches all pages of the listing and extracts filtered events
func (s *ListingScraper) FetchEvents() ([]schedule.Event, error) {
	if s.Config.Paging == PagingPageIncrement {
		return s.fetchAllPages(s.extract)
	}

	doc, err := s.fetchDocument(s.Config.URL)
	if err != nil {
		return nil, err
	}
	events, _ := s.extract(doc)
	return events, nil
}

// extract runs one pass over a fetched document. It returns the filtered
// events plus the number of candidate containers seen; the container count
// is the pagination termination signal, not the filtered count.
func (s *ListingScraper) extract(doc *goquery.Document) ([]schedule.Event, int) {
	log := logger.ForScraper(s.Config.Name)
	refDate := s.referenceDate()

	containers := doc.Find(listingContainerSelector)
	var events []schedule.Event
	containers.Each(func(i int, sel *goquery.Selection) {
		cand, ok := s.processContainer(sel)
		if !ok {
			// One bad container must never abort the batch.
			log.Debug().Int("container", i).Msg("Skipping container without an event link")
			return
		}

		dt := schedule.Normalize(cand.RawDateTime, refDate)
		if !schedule.Keep(cand, dt, s.Config.Policy, refDate) {
			log.Debug().Str("event", cand.Name).Msg("Filtered out")
			return
		}
		events = append(events, schedule.NewEvent(cand, dt))
	})

	return events, containers.Length()
}

// processContainer extracts one raw candidate from an event card
func (s *ListingScraper) processContainer(sel *goquery.Selection) (schedule.RawCandidate, bool) {
	// Prefer the stricter event-link selector, fall back to any link.
	nameLink := sel.Find(listingNameStrictSelector).First()
	if nameLink.Length() == 0 {
		nameLink = sel.Find(listingNameLooseSelector).First()
	}
	if nameLink.Length() == 0 {
		return schedule.RawCandidate{}, false
	}

	name := strings.TrimSpace(nameLink.Text())
	if name == "" {
		return schedule.RawCandidate{}, false
	}

	href, _ := nameLink.Attr("href")

	location := s.applyHandlers(sel, locationRules)

	return schedule.RawCandidate{
		Name:          name,
		RawDateTime:   s.applyHandlers(sel, []ElementHandler{firstWeekdaySpan}),
		LocationParts: []string{location},
		SourceURL:     s.ResolveURL(href),
		Promotion:     s.Config.Promotion,
		Context:       containerContext(sel, href),
	}, true
}

// firstWeekdaySpan picks the first sibling text fragment that mentions a
// weekday name. This is a heuristic tie-break, not guaranteed-correct.
func firstWeekdaySpan(sel *goquery.Selection) string {
	var found string
	sel.Find(listingDateSpanSelector).EachWithBreak(func(_ int, span *goquery.Selection) bool {
		text := strings.TrimSpace(span.Text())
		if containsWeekday(text) {
			found = text
			return false
		}
		return true
	})
	return found
}

// containerContext gathers the surrounding text the filter rules consult:
// the event link href, promotion link/image attributes, and the card text.
func containerContext(sel *goquery.Selection, href string) string {
	var parts []string
	if href != "" {
		parts = append(parts, href)
	}
	sel.Find(".promotion a, .promotion img").Each(func(_ int, el *goquery.Selection) {
		for _, attr := range []string{"alt", "title", "href"} {
			if v, ok := el.Attr(attr); ok && v != "" {
				parts = append(parts, v)
			}
		}
	})
	parts = append(parts, strings.TrimSpace(sel.Text()))
	return strings.Join(parts, " ")
}
