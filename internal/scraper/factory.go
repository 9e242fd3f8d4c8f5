package scraper

import (
	"fightfeed/eventworker/config"
	"fightfeed/eventworker/internal/schedule"
	"fightfeed/eventworker/logger"
	"fightfeed/eventworker/services/cache"
)

// CreateScrapers creates all the scrapers based on the configuration. The
// adapter kind in the source entry decides the variant; no URL matching
// happens here or anywhere downstream.
func CreateScrapers(cfg *config.Config, cacheSvc cache.CacheService) []Scraper {
	var scrapers []Scraper
	for _, src := range cfg.Sources {
		sc := sourceConfig(cfg, src)
		switch sc.Adapter {
		case AdapterListing:
			scrapers = append(scrapers, NewListingScraper(sc, cacheSvc))
		case AdapterHeaderList:
			scrapers = append(scrapers, NewHeaderListScraper(sc, cacheSvc))
		case AdapterCardGrid:
			scrapers = append(scrapers, NewCardGridScraper(sc, cacheSvc))
		default:
			logger.Warn("Skipping source %s: unknown adapter %q", src.Name, src.Adapter)
		}
	}

	logger.Info("Created %d scrapers", len(scrapers))
	return scrapers
}

// sourceConfig maps one configuration entry to a scraper source config
func sourceConfig(cfg *config.Config, src config.Source) SourceConfig {
	paging := PagingNone
	if src.Paging == string(PagingPageIncrement) {
		paging = PagingPageIncrement
	}

	policy := schedule.PolicyDefault
	switch src.Policy {
	case string(schedule.PolicyGenericBoxing):
		policy = schedule.PolicyGenericBoxing
	case string(schedule.PolicyCatchAll):
		policy = schedule.PolicyCatchAll
	}

	return SourceConfig{
		Name:       src.Name,
		URL:        src.URL,
		Promotion:  src.Promotion,
		Adapter:    AdapterKind(src.Adapter),
		Paging:     paging,
		Policy:     policy,
		MaxPages:   cfg.MaxPages,
		UseRender:  src.Render,
		RenderAddr: cfg.RenderAddr,
		CacheKey:   src.Name + "_rate_limited",
		BlockTime:  500,
	}
}
