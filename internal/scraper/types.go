package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"fightfeed/eventworker/internal/schedule"
)

// Scraper interface defines the contract for all source scrapers
type Scraper interface {
	// FetchEvents retrieves upcoming events from a source
	FetchEvents() ([]schedule.Event, error)

	// GetName returns the scraper's name for logging and identification
	GetName() string

	// GetPromotion returns the promotion label for the scraper
	GetPromotion() string
}

// AdapterKind selects which extraction variant a source uses. Sources pick
// their adapter here, not by URL matching at call sites.
type AdapterKind string

const (
	// AdapterListing handles event-card listing pages (bout containers).
	AdapterListing AdapterKind = "listing"
	// AdapterHeaderList handles article-style pages of date headers
	// followed by lists of fights.
	AdapterHeaderList AdapterKind = "headerlist"
	// AdapterCardGrid handles schedule-card layouts under running date
	// headings.
	AdapterCardGrid AdapterKind = "cardgrid"
)

// PagingMode describes how a source's result set is spread over pages.
type PagingMode string

const (
	PagingNone          PagingMode = "none"
	PagingPageIncrement PagingMode = "page-increment"
)

// ElementHandler extracts a single string from a selection. Handlers are
// applied in order; the first non-empty result wins, so adding a new
// heuristic is a pure insertion.
type ElementHandler func(*goquery.Selection) string

// SourceConfig contains configuration for one source. It is static and
// never mutated at runtime.
type SourceConfig struct {
	Name       string
	URL        string
	Promotion  string
	Adapter    AdapterKind
	Paging     PagingMode
	Policy     schedule.Policy
	MaxPages   int
	UseRender  bool
	RenderAddr string
	CacheKey   string
	BlockTime  int
}
