package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fightfeed/eventworker/config"
	"fightfeed/eventworker/helpers"
	"fightfeed/eventworker/internal/schedule"
	"fightfeed/eventworker/internal/scraper"
	"fightfeed/eventworker/services/storage"
	"fightfeed/eventworker/services/worker"
)

// TestEndToEndScrapeRun drives a full run against a local server: two sources
// with different adapters and policies, aggregation in source order, and the
// JSON output file.
func TestEndToEndScrapeRun(t *testing.T) {
	// A date one month out keeps the fixtures ahead of the temporal window
	// whenever the test runs.
	future := time.Now().UTC().AddDate(0, 1, 0)

	listingPage := fmt.Sprintf(`<html><body>
		<div data-controller="bout-toggler">
			<div class="promotion">
				<a href="/fightcenter/events/123">Fighter A vs Fighter B</a>
				<span>Main Card</span>
				<span>%s at 10:00 PM ET</span>
			</div>
			<div class="geography">
				<span>MMA</span>
				<span>T-Mobile Arena</span>
				<span>Las Vegas, Nevada</span>
			</div>
		</div>
	</body></html>`, future.Format("Monday, January 2, 2006"))

	articlePage := fmt.Sprintf(`<html><body><article>
		<h3>%s: Madison Square Garden, New York</h3>
		<ul>
			<li>Title Fight: Boxer A vs. Boxer B, 12 rounds, live on Netflix</li>
			<li>Boxer C vs. Boxer D, 8 rounds, super middleweights</li>
			<li>Zuffa Boxing: Boxer E vs. Boxer F, title fight, live on Netflix</li>
		</ul>
	</article></body></html>`, future.Format("January 2, 2006"))

	mux := http.NewServeMux()
	mux.HandleFunc("/fightcenter", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if r.URL.Query().Get("page") != "" {
			fmt.Fprint(w, "<html><body></body></html>")
			return
		}
		fmt.Fprint(w, listingPage)
	})
	mux.HandleFunc("/boxing-schedule", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, articlePage)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := config.Config{
		CrawlInterval: time.Hour,
		MaxPages:      5,
		Sources: []config.Source{
			{
				Name:      "test-ufc",
				URL:       server.URL + "/fightcenter",
				Promotion: "UFC",
				Adapter:   "listing",
				Paging:    "page-increment",
				Policy:    "default",
			},
			{
				Name:      "test-article",
				URL:       server.URL + "/boxing-schedule",
				Promotion: "Boxing",
				Adapter:   "headerlist",
				Policy:    "generic-boxing",
			},
		},
	}
	require.NoError(t, cfg.Validate())

	dir := t.TempDir()
	outputPath := filepath.Join(dir, "upcoming_events.json")

	scrapers := scraper.CreateScrapers(&cfg, nil)
	require.Len(t, scrapers, 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := worker.NewWorker(
		ctx,
		scrapers,
		nil,
		storage.NewJSONFile(outputPath),
		helpers.NewLogger(filepath.Join(dir, "errors.log")),
		cfg.CrawlInterval,
	)

	done := make(chan error, 1)
	go func() { done <- w.Start() }()

	waitForFile(t, outputPath)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var events []schedule.Event
	require.NoError(t, json.Unmarshal(data, &events))

	// The listing source comes first in the config, so its record leads. The
	// article source keeps only the streamed title fight: the plain bout has
	// no marker and the excluded brand drops out despite its markers.
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "Fighter A vs Fighter B", first.EventName)
	assert.Equal(t, future.Format("Monday, January 02"), first.DateText)
	assert.Equal(t, "10:00 PM ET", first.TimeText)
	assert.Equal(t, "Las Vegas, Nevada", first.Location)
	assert.Equal(t, "UFC", first.Promotion)
	assert.Equal(t, server.URL+"/fightcenter/events/123", first.SourceURL)

	second := events[1]
	assert.Equal(t, "Boxer A vs. Boxer B", second.EventName)
	assert.Equal(t, future.Format("Monday, January 02"), second.DateText)
	assert.Equal(t, schedule.NA, second.TimeText)
	assert.Equal(t, "Madison Square Garden, New York", second.Location)
	assert.Equal(t, "Boxing", second.Promotion)
}

func waitForFile(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("output file %s never appeared", path)
}
