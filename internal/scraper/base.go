package scraper

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"fightfeed/eventworker/helpers"
	scrapeerr "fightfeed/eventworker/pkg/errors"
	"fightfeed/eventworker/services/cache"
)

// BaseScraper provides common functionality for all scrapers
type BaseScraper struct {
	Config    SourceConfig
	CacheSvc  cache.CacheService
	BlockTime time.Duration

	// fetchFunc fetches one URL; swapped by source kind and by tests.
	fetchFunc func(url string) (io.Reader, error)
	// now supplies the reference date for year injection and filtering.
	now func() time.Time
}

// GetName returns the scraper's name for logging
func (s *BaseScraper) GetName() string {
	return s.Config.Name
}

// GetPromotion returns the promotion label for the scraper
func (s *BaseScraper) GetPromotion() string {
	return s.Config.Promotion
}

// referenceDate returns today's date, truncated to midnight UTC.
func (s *BaseScraper) referenceDate() time.Time {
	t := time.Now().UTC()
	if s.now != nil {
		t = s.now()
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// fetchWithCache fetches a URL with rate limiting backed by the cache service
func (s *BaseScraper) fetchWithCache(pageURL string) (io.Reader, error) {
	// Check if the scraper is rate limited
	if s.CacheSvc != nil && s.Config.CacheKey != "" {
		_, err := s.CacheSvc.Get(s.Config.CacheKey)
		if err == nil {
			message := fmt.Sprintf("blocked for another %d seconds", s.BlockTime/time.Second)
			return nil, scrapeerr.New(scrapeerr.ErrorTypeRateLimit, s.Config.Name, message, nil)
		}
	}

	fetch := s.fetchFunc
	if fetch == nil {
		fetch = helpers.FetchWithRandomHeaders
	}

	utf8Body, err := fetch(pageURL)
	if err != nil {
		if strings.HasPrefix(err.Error(), "rate limited") {
			if s.CacheSvc != nil && s.Config.CacheKey != "" {
				// Set rate limiting cache
				s.CacheSvc.Set(s.Config.CacheKey, []byte(fmt.Sprintf("%d", s.BlockTime/time.Second)), s.BlockTime)
			}
			return nil, scrapeerr.New(scrapeerr.ErrorTypeRateLimit, s.Config.Name, "source rate limited the fetch", err)
		}
		return nil, scrapeerr.NewNetwork(s.Config.Name, "fetch failed", err)
	}

	return utf8Body, nil
}

// fetchDocument fetches a URL and parses it into a goquery document
func (s *BaseScraper) fetchDocument(pageURL string) (*goquery.Document, error) {
	reader, err := s.fetchWithCache(pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, scrapeerr.NewParsing(s.Config.Name, "HTML parse failed", err)
	}
	return doc, nil
}

// applyHandlers applies a series of handlers to a selection; the first
// non-empty result wins
func (s *BaseScraper) applyHandlers(sel *goquery.Selection, handlers []ElementHandler) string {
	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		if result := handler(sel); result != "" {
			return result
		}
	}
	return ""
}

// ResolveURL resolves a possibly-relative link against the source URL
func (s *BaseScraper) ResolveURL(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	base, err := url.Parse(s.Config.URL)
	if err != nil {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil {
		return link
	}
	return base.ResolveReference(ref).String()
}
