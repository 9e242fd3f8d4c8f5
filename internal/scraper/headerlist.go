package scraper

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"fightfeed/eventworker/internal/schedule"
	"fightfeed/eventworker/logger"
	"fightfeed/eventworker/services/cache"
)

// headerListScanSelector covers the two alternating shapes an article-style
// schedule page is built from: headers that carry date context and lists
// whose items are individual fights.
const headerListScanSelector = "h1, h2, h3, h4, ul"

var (
	monthNames = []string{
		"January", "February", "March", "April", "May", "June", "July",
		"August", "September", "October", "November", "December",
	}

	// itemLabelRe strips a leading label prefix such as "Title Fight:" or
	// "Main event:" from a list item.
	itemLabelRe = regexp.MustCompile(`^[A-Za-z'\- ]{2,30}:\s*`)
)

// headerListState is the accumulator threaded through the document-order
// scan. Modeling the running date context explicitly keeps the adapter free
// of incidental mutable state.
type headerListState struct {
	currentDate string
	location    string
}

// HeaderListScraper extracts events from article-style pages: date headers
// followed by lists of fights.
type HeaderListScraper struct {
	BaseScraper
}

// NewHeaderListScraper creates a new header-plus-list scraper
func NewHeaderListScraper(config SourceConfig, cacheSvc cache.CacheService) *HeaderListScraper {
	return &HeaderListScraper{
		BaseScraper: BaseScraper{
			Config:    config,
			CacheSvc:  cacheSvc,
			BlockTime: time.Duration(config.BlockTime) * time.Second,
		},
	}
}

// FetchEvents fetches the article page and extracts filtered events
func (s *HeaderListScraper) FetchEvents() ([]schedule.Event, error) {
	doc, err := s.fetchDocument(s.Config.URL)
	if err != nil {
		return nil, err
	}
	events, _ := s.extract(doc)
	return events, nil
}

// extract folds over headers and lists in document order
func (s *HeaderListScraper) extract(doc *goquery.Document) ([]schedule.Event, int) {
	log := logger.ForScraper(s.Config.Name)
	refDate := s.referenceDate()

	var events []schedule.Event
	candidates := 0
	state := headerListState{}

	doc.Find(headerListScanSelector).Each(func(_ int, sel *goquery.Selection) {
		if goquery.NodeName(sel) != "ul" {
			state = nextHeaderState(state, strings.TrimSpace(sel.Text()))
			return
		}

		if state.currentDate == "" {
			// A list before any date header has no context to attach.
			return
		}

		sel.Find("li").Each(func(i int, item *goquery.Selection) {
			candidates++
			cand, ok := s.processItem(item, state)
			if !ok {
				log.Debug().Int("item", i).Msg("Skipping list item without a fight name")
				return
			}

			dt := schedule.Normalize(cand.RawDateTime, refDate)
			if !schedule.Keep(cand, dt, s.Config.Policy, refDate) {
				log.Debug().Str("event", cand.Name).Msg("Filtered out")
				return
			}
			events = append(events, schedule.NewEvent(cand, dt))
		})
	})

	return events, candidates
}

// nextHeaderState advances the scan state for a header text. A header
// mentioning a weekday resets the running date; a "<date>: <location>"
// header sets both the date and the location for the list that follows.
func nextHeaderState(state headerListState, text string) headerListState {
	if date, location, ok := splitDateColonLocation(text); ok {
		return headerListState{currentDate: date, location: location}
	}
	if containsWeekday(text) {
		return headerListState{currentDate: text}
	}
	return state
}

// splitDateColonLocation recognizes headers of the form "<date>: <location>"
func splitDateColonLocation(text string) (date, location string, ok bool) {
	idx := strings.Index(text, ":")
	if idx <= 0 || idx == len(text)-1 {
		return "", "", false
	}
	left := strings.TrimSpace(text[:idx])
	right := strings.TrimSpace(text[idx+1:])
	if right == "" || !looksLikeDate(left) {
		return "", "", false
	}
	return left, right, true
}

// looksLikeDate requires a month name and a day number in the fragment
func looksLikeDate(text string) bool {
	hasMonth := false
	for _, month := range monthNames {
		if strings.Contains(text, month) || strings.Contains(text, month[:3]) {
			hasMonth = true
			break
		}
	}
	return hasMonth && strings.ContainsAny(text, "0123456789")
}

// processItem extracts one candidate from a list item. The leading label
// prefix is stripped; the fight name is the text up to the first comma.
func (s *HeaderListScraper) processItem(item *goquery.Selection, state headerListState) (schedule.RawCandidate, bool) {
	text := strings.TrimSpace(item.Text())
	if text == "" {
		return schedule.RawCandidate{}, false
	}

	name := itemLabelRe.ReplaceAllString(text, "")
	if idx := strings.Index(name, ","); idx > 0 {
		name = name[:idx]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return schedule.RawCandidate{}, false
	}

	href, _ := item.Find("a").First().Attr("href")

	return schedule.RawCandidate{
		Name:          name,
		RawDateTime:   state.currentDate,
		LocationParts: []string{state.location},
		SourceURL:     s.ResolveURL(href),
		Promotion:     s.Config.Promotion,
		Context:       text,
	}, true
}
