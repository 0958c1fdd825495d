package scraper

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"stayscan/hotelworker/helpers"
	"stayscan/hotelworker/internal/browser"
	"stayscan/hotelworker/logger"
	apperr "stayscan/hotelworker/pkg/errors"
	"stayscan/hotelworker/services/cache"
)

// CrawlConfig holds the parameters of one crawl pass
type CrawlConfig struct {
	BaseURL        string
	City           string
	CheckIn        string
	CheckOut       string
	Limit          int
	ElementTimeout time.Duration
	LoadRetries    int
	BlockTime      time.Duration
}

// Crawler drives the two-phase crawl: enumerate the search results, build a
// basic record per card, then drill into each hotel's detail page and merge
// rooms, amenities and gallery images into the record. One browser session
// backs the whole crawl and every operation against it runs sequentially.
type Crawler struct {
	session    browser.Session
	locator    *browser.Locator
	selectors  Selectors
	cfg        CrawlConfig
	cacheSvc   cache.CacheService
	strategies []AmenityStrategy
	log        *logger.Logger
}

// NewCrawler creates a crawler over an already-established session
func NewCrawler(session browser.Session, locator *browser.Locator, cfg CrawlConfig, cacheSvc cache.CacheService) *Crawler {
	if cfg.LoadRetries < 1 {
		cfg.LoadRetries = 1
	}
	return &Crawler{
		session:   session,
		locator:   locator,
		selectors: DefaultSelectors(),
		cfg:       cfg,
		cacheSvc:  cacheSvc,
		strategies: []AmenityStrategy{
			CategoryAmenities{},
			KeywordAmenities{},
		},
		log: logger.ForScraper(),
	}
}

// SearchURL constructs the search URL from the city and stay dates. Spaces
// in the city become hyphens.
func (c *Crawler) SearchURL() string {
	city := url.PathEscape(strings.ReplaceAll(c.cfg.City, " ", "-"))
	return fmt.Sprintf("%s/%s/%s/%s/2adults?sort=rank_a",
		c.cfg.BaseURL, city, c.cfg.CheckIn, c.cfg.CheckOut)
}

// Run executes one crawl pass. It always produces a document, possibly
// empty or partial; the only error it reports is context cancellation.
func (c *Crawler) Run(ctx context.Context) (*Document, error) {
	doc := &Document{
		City:       c.cfg.City,
		Hotels:     []HotelRecord{},
		Pagination: Pagination{CurrentPage: 1, TotalPages: 1},
	}

	searchURL := c.SearchURL()

	if !c.loadPage(ctx, searchURL) {
		c.log.Error().Str("url", searchURL).Msg("Failed to load search page, aborting crawl")
		return c.finish(doc), ctx.Err()
	}

	cards := c.locator.All(ctx, c.selectors.HotelCard, c.cfg.ElementTimeout)
	if len(cards) == 0 {
		c.log.Error().Msg("No hotel cards found")
		return c.finish(doc), ctx.Err()
	}
	c.log.Info().Int("count", len(cards)).Msg("Found hotel cards")

	if c.cfg.Limit > 0 && len(cards) > c.cfg.Limit {
		cards = cards[:c.cfg.Limit]
	}

	// Basic-info phase: keep only cards with a usable name and detail URL.
	var pending []*HotelRecord
	for _, card := range cards {
		record := BuildHotelRecord(card, c.selectors, c.cfg.BaseURL, c.log)
		if record == nil || record.DetailURL == "" {
			continue
		}
		pending = append(pending, record)
	}
	c.log.Info().Int("count", len(pending)).Msg("Built basic records")

	// Detail phase, in original card order.
	for _, record := range pending {
		if ctx.Err() != nil {
			return c.finish(doc), ctx.Err()
		}

		c.scrapeDetails(ctx, record)
		doc.Hotels = append(doc.Hotels, *record)

		// Return to the remembered search page and pause briefly before
		// the next hotel. Politeness, not correctness.
		c.loadPage(ctx, searchURL)
		helpers.SleepCtx(ctx, time.Duration((1+rand.Float64())*float64(time.Second)))
	}

	return c.finish(doc), nil
}

// scrapeDetails merges the detail-page extraction into the record. A page
// load that fails after all retries leaves the basic fields intact and
// blocks the URL for a while so an immediate re-run skips it.
func (c *Crawler) scrapeDetails(ctx context.Context, record *HotelRecord) {
	if c.isBlocked(record.DetailURL) {
		c.log.Info().Str("url", record.DetailURL).Msg("Detail URL is blocked, keeping basic info only")
		return
	}

	if !c.loadPage(ctx, record.DetailURL) {
		c.log.Error().Str("url", record.DetailURL).Msg("Failed to load detail page, keeping basic info only")
		c.block(record.DetailURL)
		return
	}

	page := c.locator.Page(ctx, c.cfg.ElementTimeout)
	if page == nil {
		c.log.Warn().Str("url", record.DetailURL).Msg("Could not snapshot detail page")
		return
	}

	record.AddImages(ExtractDetailImages(page, c.selectors, c.log)...)

	roomCards := c.locator.All(ctx, c.selectors.RoomCard, c.cfg.ElementTimeout)
	record.Rooms = ExtractRooms(roomCards, c.selectors, c.log)
	c.log.Info().Str("hotel", record.Name).Int("rooms", len(record.Rooms)).Msg("Extracted rooms")

	for _, strategy := range c.strategies {
		amenities := strategy.Extract(page, c.selectors, c.log)
		if len(amenities) > 0 {
			record.Amenities = amenities
			c.log.Info().
				Str("hotel", record.Name).
				Str("strategy", strategy.Name()).
				Int("categories", len(amenities)).
				Msg("Extracted amenities")
			break
		}
	}
}

// loadPage navigates to the URL and runs the load-settle routine, retrying
// with exponential backoff (base 2, attempt-indexed) up to the configured
// attempt count.
func (c *Crawler) loadPage(ctx context.Context, pageURL string) bool {
	for attempt := 0; attempt < c.cfg.LoadRetries; attempt++ {
		c.log.Info().Str("url", pageURL).Int("attempt", attempt+1).Msg("Loading page")

		err := c.session.Navigate(ctx, pageURL)
		if err == nil {
			c.locator.WaitReady(ctx, c.cfg.ElementTimeout)
			c.dismissPopups(ctx)
			c.settle(ctx)
			return true
		}

		c.log.Error().Err(err).Str("url", pageURL).Int("attempt", attempt+1).Msg("Error loading page")

		// A dead session will not come back on its own; only retry
		// failures that a fresh navigation might clear.
		var serr *apperr.ScrapeError
		if errors.As(err, &serr) && !serr.IsRetryable() {
			c.log.Error().Str("url", pageURL).Str("type", string(serr.Type)).Msg("Unrecoverable error, giving up on page")
			return false
		}

		if attempt == c.cfg.LoadRetries-1 {
			return false
		}
		if !helpers.SleepCtx(ctx, time.Duration(1<<attempt)*time.Second) {
			return false
		}
	}
	return false
}

// dismissPopups clicks the known popup dismissal selectors, best effort.
// Every failure is swallowed.
func (c *Crawler) dismissPopups(ctx context.Context) {
	for _, selector := range c.selectors.PopupDismiss {
		if err := c.session.Click(ctx, selector); err != nil {
			c.log.Debug().Err(err).Str("selector", selector).Msg("Popup dismissal failed")
			continue
		}
		helpers.SleepCtx(ctx, 500*time.Millisecond)
	}
}

// settle scrolls down and back up with fixed pauses so lazy-loaded content
// renders before extraction starts.
func (c *Crawler) settle(ctx context.Context) {
	scripts := []string{
		`(() => { window.scrollTo(0, document.body.scrollHeight/2); return true; })()`,
		`(() => { window.scrollTo(0, document.body.scrollHeight); return true; })()`,
		`(() => { window.scrollTo(0, 0); return true; })()`,
	}
	for i, script := range scripts {
		var ok bool
		if err := c.session.Evaluate(ctx, script, &ok); err != nil {
			c.log.Debug().Err(err).Msg("Scroll script failed")
			return
		}
		if i < len(scripts)-1 {
			helpers.SleepCtx(ctx, 2*time.Second)
		}
	}
}

// finish stamps the crawl metadata onto the document
func (c *Crawler) finish(doc *Document) *Document {
	now := time.Now()
	doc.Metadata = Metadata{
		ScrapingDate: now.Format("2006-01-02"),
		ScrapingTime: now.Format("15:04"),
		SourceURL:    c.cfg.BaseURL,
	}
	return doc
}

func (c *Crawler) isBlocked(pageURL string) bool {
	if c.cacheSvc == nil {
		return false
	}
	_, err := c.cacheSvc.Get(blockKey(pageURL))
	return err == nil
}

func (c *Crawler) block(pageURL string) {
	if c.cacheSvc == nil || c.cfg.BlockTime <= 0 {
		return
	}
	if err := c.cacheSvc.Set(blockKey(pageURL), []byte("1"), c.cfg.BlockTime); err != nil {
		c.log.Warn().Err(err).Str("url", pageURL).Msg("Failed to set block key")
	}
}

// blockKey hashes the URL so it fits the cache key length limit
func blockKey(pageURL string) string {
	h := fnv.New64a()
	h.Write([]byte(pageURL))
	return fmt.Sprintf("hotelworker:block:%x", h.Sum64())
}
