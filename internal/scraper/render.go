package scraper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fightfeed/eventworker/helpers"
	"fightfeed/eventworker/logger"
	scrapeerr "fightfeed/eventworker/pkg/errors"
)

// renderScript is executed by the headless browser service. It loads the
// page, waits for client-side rendering, and returns the final markup.
const renderScript = `module.exports = async ({ page, context }) => {
	await page.setViewport({ width: 1280, height: 800 });
	await page.setUserAgent('Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36');
	await page.goto(context.url, { waitUntil: 'domcontentloaded', timeout: 30000 });
	await page.waitForTimeout(3000);
	return await page.content();
}`

var renderClient = &http.Client{Timeout: 60 * time.Second}

// fetchWithRender fetches a URL through the headless-render service. Pages
// that build their schedule client-side return an empty shell over plain
// HTTP, so they go through the browser instead.
func (s *BaseScraper) fetchWithRender(pageURL string) (io.Reader, error) {
	if s.Config.RenderAddr == "" {
		// No render service configured; a plain fetch is better than nothing.
		logger.ForScraper(s.Config.Name).Warn().Msg("No render service configured, falling back to plain fetch")
		return helpers.FetchWithRandomHeaders(pageURL)
	}

	payload := map[string]interface{}{
		"code": renderScript,
		"context": map[string]interface{}{
			"url": pageURL,
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal render payload: %w", err)
	}

	req, err := http.NewRequest("POST", s.Config.RenderAddr+"/function", bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := renderClient.Do(req)
	if err != nil {
		return nil, scrapeerr.NewRender(s.Config.Name, "render service request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, scrapeerr.NewRender(s.Config.Name, fmt.Sprintf("render service unexpected status code: %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, scrapeerr.NewRender(s.Config.Name, "failed to read render response", err)
	}
	if len(body) == 0 {
		return nil, scrapeerr.NewRender(s.Config.Name, "render service returned an empty body", nil)
	}

	return bytes.NewReader(body), nil
}
