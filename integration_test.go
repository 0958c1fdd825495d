package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stayscan/hotelworker/internal/browser"
	"stayscan/hotelworker/internal/scraper"
	"stayscan/hotelworker/services/storage"
	"stayscan/hotelworker/services/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSession serves canned page fragments keyed by the currently
// loaded URL, standing in for a live browser.
type scriptedSession struct {
	pages   map[string]map[string][]string
	current string
}

func (s *scriptedSession) Navigate(ctx context.Context, url string) error {
	if _, ok := s.pages[url]; !ok {
		return errors.New("unknown url")
	}
	s.current = url
	return nil
}

func (s *scriptedSession) ReadyState(ctx context.Context) (string, error) {
	return "complete", nil
}

func (s *scriptedSession) Evaluate(ctx context.Context, expr string, out interface{}) error {
	return errors.New("scripts not supported")
}

func (s *scriptedSession) OuterHTML(ctx context.Context, selector string) ([]string, error) {
	return s.pages[s.current][selector], nil
}

func (s *scriptedSession) Click(ctx context.Context, selector string) error {
	return errors.New("no element")
}

func (s *scriptedSession) Close() error { return nil }

// TestPipeline runs the crawl-save pipeline end to end over a scripted
// session and checks the document that lands on disk.
func TestPipeline(t *testing.T) {
	cfg := scraper.CrawlConfig{
		BaseURL:        "https://example.com/hotels",
		City:           "Athens",
		CheckIn:        "2026-09-10",
		CheckOut:       "2026-09-12",
		ElementTimeout: 50 * time.Millisecond,
		LoadRetries:    1,
	}

	session := &scriptedSession{pages: map[string]map[string][]string{}}
	locator := browser.NewLocator(session, 10*time.Millisecond, 1, time.Millisecond)
	crawler := scraper.NewCrawler(session, locator, cfg, nil)

	session.pages[crawler.SearchURL()] = map[string][]string{
		"div.S0Ps-resultInner": {`
			<div class="S0Ps-resultInner">
				<a class="FLpo-big-name" href="/hotels/hotel-grande">Hotel Grande</a>
				<div class="upS4-big-name">Plaka</div>
				<div class="c1XBO">$120</div>
			</div>`},
	}
	session.pages["https://example.com/hotels/hotel-grande"] = map[string][]string{
		"body": {`
			<body>
				<div class="kml-col-12-12 kml-col-6-12-m">
					<div class="BxLB-category-name">Internet</div>
					<div class="BxLB-amenity-name">Free WiFi</div>
				</div>
			</body>`},
		"div.c5l3f": {`
			<div class="c5l3f">
				<div class="c_Hjx-group-header-title">Deluxe Double Room</div>
				<span class="C9NJ-amount">$150 per night</span>
			</div>`},
	}

	dataDir := t.TempDir()
	w := worker.NewWorker(crawler, storage.NewJSONWriter(dataDir), "hotel_data.json", nil, nil)
	require.NoError(t, w.Run(context.Background()))

	data, err := os.ReadFile(filepath.Join(dataDir, "hotel_data.json"))
	require.NoError(t, err)

	var doc scraper.Document
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "Athens", doc.City)
	require.Len(t, doc.Hotels, 1)
	assert.Equal(t, "Hotel Grande", doc.Hotels[0].Name)
	require.Len(t, doc.Hotels[0].Rooms, 1)
	assert.Equal(t, "Deluxe Double Room", doc.Hotels[0].Rooms[0].Type)
	assert.Equal(t, 1, doc.Pagination.CurrentPage)
	assert.NotEmpty(t, doc.Metadata.ScrapingDate)
}

// TestChromeSession needs a local Chrome install; set HOTEL_INTEGRATION
// to run it.
func TestChromeSession(t *testing.T) {
	if os.Getenv("HOTEL_INTEGRATION") == "" {
		t.Skip("HOTEL_INTEGRATION not set, skipping browser test")
	}

	ctx := context.Background()
	session, err := browser.NewChromeSession(ctx, browser.Options{
		Headless:     true,
		WindowWidth:  1280,
		WindowHeight: 800,
		Timeout:      30 * time.Second,
	})
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, session.Navigate(ctx, "https://www.example.com"))

	state, err := session.ReadyState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "complete", state)

	fragments, err := session.OuterHTML(ctx, "h1")
	require.NoError(t, err)
	assert.NotEmpty(t, fragments)
}
