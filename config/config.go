package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Source describes one scrape source: where to fetch, which adapter parses
// it, and which filter policy applies. The list is static configuration.
type Source struct {
	Name      string `yaml:"name"`
	URL       string `yaml:"url"`
	Promotion string `yaml:"promotion"`
	Adapter   string `yaml:"adapter"` // listing | headerlist | cardgrid
	Paging    string `yaml:"paging"`  // none | page-increment
	Policy    string `yaml:"policy"`  // default | generic-boxing | catch-all
	Render    bool   `yaml:"render"`
}

// Config represents the application configuration
type Config struct {
	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Memcache configuration
	MemcacheAddr string

	// Scrape configuration
	CrawlInterval time.Duration
	MaxPages      int
	RenderAddr    string

	// Output configuration
	OutputPath   string
	ErrorLogFile string

	// Sources to scrape, in output order
	Sources []Source

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with
// defaults. A SOURCES_FILE environment variable points at an optional YAML
// file that replaces the built-in source list.
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	crawlInterval, _ := strconv.Atoi(getEnv("CRAWL_INTERVAL_SECONDS", "3600"))
	maxPages, _ := strconv.Atoi(getEnv("MAX_PAGES", "20"))

	cfg := Config{
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "fightevents"),
		RedisStreamMaxLength: streamMaxLen,
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", "localhost:11211"),
		CrawlInterval:        time.Duration(crawlInterval) * time.Second,
		MaxPages:             maxPages,
		RenderAddr:           getEnv("RENDER_ADDR", ""),
		OutputPath:           getEnv("OUTPUT_PATH", "upcoming_events.json"),
		ErrorLogFile:         getEnv("ERROR_LOG_FILE", "scrape_errors.log"),
		Sources:              defaultSources(),
		Environment:          getEnv("FIGHTFEED_ENVIRONMENT", "development"),
	}

	if path := os.Getenv("SOURCES_FILE"); path != "" {
		sources, err := LoadSources(path)
		if err == nil {
			cfg.Sources = sources
		}
	}

	return cfg
}

// defaultSources is the built-in source list, URL-overridable per source.
func defaultSources() []Source {
	return []Source{
		{
			Name:      "tapology-ufc",
			URL:       getEnv("TAPOLOGY_UFC_URL", "https://www.tapology.com/fightcenter/promotions/1-ultimate-fighting-championship-ufc"),
			Promotion: "UFC",
			Adapter:   "listing",
			Paging:    "page-increment",
			Policy:    "default",
		},
		{
			Name:      "tapology-zuffa",
			URL:       getEnv("TAPOLOGY_ZUFFA_URL", "https://www.tapology.com/fightcenter/promotions/6299-zuffa-boxing-zb"),
			Promotion: "Zuffa",
			Adapter:   "listing",
			Paging:    "page-increment",
			Policy:    "default",
		},
		{
			Name:      "tapology-pfl",
			URL:       getEnv("TAPOLOGY_PFL_URL", "https://www.tapology.com/fightcenter/promotions/1969-professional-fighters-league-pfl"),
			Promotion: "PFL",
			Adapter:   "listing",
			Paging:    "page-increment",
			Policy:    "default",
		},
		{
			Name:      "boxlive",
			URL:       getEnv("BOXLIVE_URL", "https://box.live/upcoming-fights-schedule/"),
			Promotion: "Boxing",
			Adapter:   "cardgrid",
			Paging:    "none",
			Policy:    "generic-boxing",
			Render:    true,
		},
		{
			Name:      "boxing-schedule-article",
			URL:       getEnv("BOXING_ARTICLE_URL", "https://www.badlefthook.com/boxing-schedule"),
			Promotion: "Boxing",
			Adapter:   "headerlist",
			Paging:    "none",
			Policy:    "generic-boxing",
		},
	}
}

// Validate checks the configuration for inconsistencies
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("no sources configured")
	}
	for _, s := range c.Sources {
		if s.Name == "" || s.URL == "" {
			return fmt.Errorf("source %q: name and url are required", s.Name)
		}
		switch s.Adapter {
		case "listing", "headerlist", "cardgrid":
		default:
			return fmt.Errorf("source %q: unknown adapter %q", s.Name, s.Adapter)
		}
		switch s.Paging {
		case "", "none", "page-increment":
		default:
			return fmt.Errorf("source %q: unknown paging mode %q", s.Name, s.Paging)
		}
		switch s.Policy {
		case "", "default", "generic-boxing", "catch-all":
		default:
			return fmt.Errorf("source %q: unknown policy %q", s.Name, s.Policy)
		}
	}
	if c.CrawlInterval <= 0 {
		return fmt.Errorf("crawl interval must be positive")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
