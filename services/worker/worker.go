package worker

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"fightfeed/eventworker/helpers"
	"fightfeed/eventworker/internal/schedule"
	"fightfeed/eventworker/internal/scraper"
	"fightfeed/eventworker/services/publisher"
	"fightfeed/eventworker/services/storage"
)

// Worker handles the scraping, aggregation and publishing process
type Worker struct {
	ctx           context.Context
	scrapers      []scraper.Scraper
	publisher     publisher.Publisher
	storage       storage.Storage
	logger        helpers.LoggerInterface
	crawlInterval time.Duration
}

// NewWorker creates a new worker
func NewWorker(
	ctx context.Context,
	scrapers []scraper.Scraper,
	pub publisher.Publisher,
	store storage.Storage,
	logger helpers.LoggerInterface,
	crawlInterval time.Duration,
) *Worker {
	return &Worker{
		ctx:           ctx,
		scrapers:      scrapers,
		publisher:     pub,
		storage:       store,
		logger:        logger,
		crawlInterval: crawlInterval,
	}
}

// Start starts the worker process
func (w *Worker) Start() error {
	for {
		start := time.Now()
		w.runScrapers()
		elapsed := time.Since(start)
		if os.Getenv("FIGHTFEED_ENVIRONMENT") != "production" {
			w.logger.LogInfo("scrape run took: %s", elapsed)
		}

		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		case <-time.After(w.crawlInterval):
		}
	}
}

// runScrapers runs all the scrapers in parallel and hands the aggregate to
// the output collaborators. Each scraper accumulates into its own slot so
// the final sequence keeps source-list order regardless of finish order.
func (w *Worker) runScrapers() {
	results := make([][]schedule.Event, len(w.scrapers))

	var wg sync.WaitGroup
	for i, s := range w.scrapers {
		wg.Add(1)
		go func(i int, s scraper.Scraper) {
			defer wg.Done()
			results[i] = w.scrape(s)
		}(i, s)
	}
	wg.Wait()

	all := schedule.Aggregate(results)
	w.logger.LogInfo("scraped %d events total", len(all))

	if w.storage != nil {
		if err := w.storage.Save(all); err != nil {
			w.logger.LogError("Storage", err)
		}
	}

	w.publish(all)
}

// scrape runs one scraper; a failure is isolated to that source and simply
// contributes zero records.
func (w *Worker) scrape(s scraper.Scraper) []schedule.Event {
	events, err := s.FetchEvents()
	if err != nil {
		w.logger.LogError(s.GetName(), err)
		return nil
	}
	return events
}

// publish pushes each record to the stream and trims it afterwards
func (w *Worker) publish(events []schedule.Event) {
	if w.publisher == nil {
		return
	}

	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			w.logger.LogError(event.Promotion, err)
			continue
		}
		if err := w.publisher.Publish(event.Promotion, data); err != nil {
			w.logger.LogError(event.Promotion, err)
		}
	}

	if err := w.publisher.TrimStreams(); err != nil {
		w.logger.LogError("StreamTrimming", err)
	}
}
