package scraper

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fightfeed/eventworker/internal/schedule"
)

func pageWithContainers(n int) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<div data-controller="bout-toggler">
			<div class="promotion"><a href="/fightcenter/events/%d">Fight %d</a></div>
		</div>`, i, i)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func newPagedScraper(maxPages int) *ListingScraper {
	s := NewListingScraper(SourceConfig{
		Name:      "test-paged",
		URL:       "https://www.example.com/fightcenter",
		Promotion: "UFC",
		Adapter:   AdapterListing,
		Paging:    PagingPageIncrement,
		Policy:    schedule.PolicyDefault,
		MaxPages:  maxPages,
	}, NewMockCacheService())
	pinReferenceDate(&s.BaseScraper)
	return s
}

func TestPaginationTerminatesOnEmptyPage(t *testing.T) {
	s := newPagedScraper(0)

	var fetched []string
	pages := []string{pageWithContainers(3), pageWithContainers(2), pageWithContainers(0)}
	s.fetchFunc = func(url string) (io.Reader, error) {
		fetched = append(fetched, url)
		require.LessOrEqual(t, len(fetched), len(pages), "fetched past the empty page")
		return strings.NewReader(pages[len(fetched)-1]), nil
	}

	events, err := s.FetchEvents()
	require.NoError(t, err)

	// Exactly 3 fetches for a [3, 2, 0] page sequence, 5 records total.
	assert.Len(t, fetched, 3)
	assert.Len(t, events, 5)

	// Page 1 is the bare URL, later pages get the page parameter.
	assert.Equal(t, "https://www.example.com/fightcenter", fetched[0])
	assert.Equal(t, "https://www.example.com/fightcenter?page=2", fetched[1])
	assert.Equal(t, "https://www.example.com/fightcenter?page=3", fetched[2])
}

func TestPaginationMaxPagesSafetyValve(t *testing.T) {
	s := newPagedScraper(3)

	fetches := 0
	s.fetchFunc = func(url string) (io.Reader, error) {
		fetches++
		// A source that never returns an empty page.
		return strings.NewReader(pageWithContainers(1)), nil
	}

	events, err := s.FetchEvents()
	require.NoError(t, err)
	assert.Equal(t, 3, fetches, "the page limit must stop a source that never empties")
	assert.Len(t, events, 3)
}

func TestPaginationFirstPageErrorIsReported(t *testing.T) {
	s := newPagedScraper(0)
	s.fetchFunc = func(url string) (io.Reader, error) {
		return nil, errors.New("connection refused")
	}

	_, err := s.FetchEvents()
	assert.Error(t, err)
}

func TestPaginationLaterPageErrorIsEmptyPage(t *testing.T) {
	s := newPagedScraper(0)

	fetches := 0
	s.fetchFunc = func(url string) (io.Reader, error) {
		fetches++
		if fetches == 1 {
			return strings.NewReader(pageWithContainers(2)), nil
		}
		return nil, errors.New("timeout")
	}

	events, err := s.FetchEvents()
	require.NoError(t, err, "a failed later page degrades to an empty page")
	assert.Equal(t, 2, fetches)
	assert.Len(t, events, 2)
}
