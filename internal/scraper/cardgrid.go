package scraper

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"fightfeed/eventworker/internal/schedule"
	"fightfeed/eventworker/logger"
	"fightfeed/eventworker/services/cache"
)

// Selectors for schedule-card layouts. Date headings and cards interleave in
// document order, so the scan walks both together.
const (
	cardGridScanSelector = "h2, h3, div"
	cardClass            = "schedule-card"
	cardNameSelector     = ".schedule-card__view-btn"
	cardPlaceSelector    = ".schedule-card__content__place"
	cardTimeSelector     = ".localtime"
)

// cardGridState is the running date context accumulator for the scan.
type cardGridState struct {
	currentDate string
}

// CardGridScraper extracts events from schedule-card layouts where cards sit
// under running date headings.
type CardGridScraper struct {
	BaseScraper
}

// NewCardGridScraper creates a new card-grid scraper
func NewCardGridScraper(config SourceConfig, cacheSvc cache.CacheService) *CardGridScraper {
	scraper := &CardGridScraper{
		BaseScraper: BaseScraper{
			Config:    config,
			CacheSvc:  cacheSvc,
			BlockTime: time.Duration(config.BlockTime) * time.Second,
		},
	}
	if config.UseRender {
		scraper.fetchFunc = scraper.fetchWithRender
	}
	return scraper
}

// FetchEvents fetches the schedule page and extracts filtered events
func (s *CardGridScraper) FetchEvents() ([]schedule.Event, error) {
	doc, err := s.fetchDocument(s.Config.URL)
	if err != nil {
		return nil, err
	}
	events, _ := s.extract(doc)
	return events, nil
}

// extract folds over headings and cards in document order
func (s *CardGridScraper) extract(doc *goquery.Document) ([]schedule.Event, int) {
	log := logger.ForScraper(s.Config.Name)
	refDate := s.referenceDate()

	var events []schedule.Event
	cards := 0
	state := cardGridState{}

	doc.Find(cardGridScanSelector).Each(func(i int, sel *goquery.Selection) {
		name := goquery.NodeName(sel)
		if name == "h2" || name == "h3" {
			if text := strings.TrimSpace(sel.Text()); containsWeekday(text) {
				state.currentDate = text
			}
			return
		}

		if !sel.HasClass(cardClass) {
			return
		}
		cards++

		cand, ok := s.processCard(sel, state)
		if !ok {
			log.Debug().Int("card", i).Msg("Skipping schedule card without content")
			return
		}

		dt := schedule.Normalize(cand.RawDateTime, refDate)
		if !schedule.Keep(cand, dt, s.Config.Policy, refDate) {
			log.Debug().Str("event", cand.Name).Msg("Filtered out")
			return
		}
		events = append(events, schedule.NewEvent(cand, dt))
	})

	return events, cards
}

// processCard extracts one candidate from a schedule card, combining the
// running date context with the card-local time fragment.
func (s *CardGridScraper) processCard(sel *goquery.Selection, state cardGridState) (schedule.RawCandidate, bool) {
	nameSel := sel.Find(cardNameSelector).First()
	name := strings.TrimSpace(nameSel.AttrOr("title", ""))
	if name == "" {
		name = strings.TrimSpace(nameSel.Text())
	}
	if name == "" {
		name = "Unknown Fight"
	}

	location := strings.TrimSpace(sel.Find(cardPlaceSelector).First().Text())
	timeText := strings.TrimSpace(sel.Find(cardTimeSelector).First().Text())
	href, _ := nameSel.Attr("href")

	rawDateTime := strings.TrimSpace(state.currentDate + " " + timeText)
	if rawDateTime == "" && name == "Unknown Fight" {
		return schedule.RawCandidate{}, false
	}

	return schedule.RawCandidate{
		Name:          name,
		RawDateTime:   rawDateTime,
		LocationParts: []string{location},
		SourceURL:     s.ResolveURL(href),
		Promotion:     s.Config.Promotion,
		Context:       strings.Join(strings.Fields(sel.Text()), " "),
	}, true
}
