package browser

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"

	"stayscan/hotelworker/logger"
	"stayscan/hotelworker/pkg/errors"
)

// Options configures the Chrome session. Timeout bounds each individual
// browser operation, not the session as a whole.
type Options struct {
	Headless     bool
	UserAgent    string
	WindowWidth  int
	WindowHeight int
	Timeout      time.Duration
}

// ChromeSession implements Session on top of a chromedp-driven Chrome
type ChromeSession struct {
	ctx     context.Context
	cancels []context.CancelFunc
	timeout time.Duration
	log     *logger.Logger
}

var _ Session = (*ChromeSession)(nil)

// NewChromeSession starts a Chrome instance and attaches a page context to
// it. Failure here is fatal for the crawl; no retry is attempted.
func NewChromeSession(parent context.Context, opts Options) (*ChromeSession, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(opts.WindowWidth, opts.WindowHeight),
		chromedp.UserAgent(opts.UserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	s := &ChromeSession{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelBrowser, cancelAlloc},
		timeout: opts.Timeout,
		log:     logger.ForBrowser(),
	}

	// Spin the browser up now so a broken environment surfaces at startup
	// instead of on the first navigation.
	octx, cancel := s.opContext()
	defer cancel()
	if err := chromedp.Run(octx,
		chromedp.Evaluate(`Object.defineProperty(navigator, 'webdriver', {get: () => undefined}); true`, nil),
	); err != nil {
		s.Close()
		return nil, errors.NewSession("startup", "failed to launch browser", err)
	}

	s.log.Info().
		Bool("headless", opts.Headless).
		Int("width", opts.WindowWidth).
		Int("height", opts.WindowHeight).
		Msg("Browser session started")

	return s, nil
}

// opContext derives a context for a single browser operation. The session
// context itself carries no deadline; a crawl runs as long as it needs to.
func (s *ChromeSession) opContext() (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(s.ctx, s.timeout)
	}
	return context.WithCancel(s.ctx)
}

// Navigate loads the given URL
func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	octx, cancel := s.opContext()
	defer cancel()
	if err := chromedp.Run(octx, chromedp.Navigate(url)); err != nil {
		return errors.NewNavigation("navigate", url, err)
	}
	return nil
}

// ReadyState returns document.readyState
func (s *ChromeSession) ReadyState(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	octx, cancel := s.opContext()
	defer cancel()
	var state string
	if err := chromedp.Run(octx, chromedp.Evaluate(`document.readyState`, &state)); err != nil {
		return "", fmt.Errorf("ready state: %w", err)
	}
	return state, nil
}

// Evaluate runs a script in page context
func (s *ChromeSession) Evaluate(ctx context.Context, expr string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	octx, cancel := s.opContext()
	defer cancel()
	if err := chromedp.Run(octx, chromedp.Evaluate(expr, out)); err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	return nil
}

// OuterHTML returns the outer HTML of every element matching the selector
func (s *ChromeSession) OuterHTML(ctx context.Context, selector string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	expr := fmt.Sprintf(
		`Array.from(document.querySelectorAll(%s)).map(el => el.outerHTML)`,
		strconv.Quote(selector),
	)
	octx, cancel := s.opContext()
	defer cancel()
	var html []string
	if err := chromedp.Run(octx, chromedp.Evaluate(expr, &html)); err != nil {
		return nil, fmt.Errorf("outer html %q: %w", selector, err)
	}
	return html, nil
}

// Click clicks the first matching element. A missing element is not an
// error; the returned bool-like behavior is collapsed into nil so callers
// can dismiss optional popups without caring whether they existed.
func (s *ChromeSession) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	expr := fmt.Sprintf(
		`(() => { const el = document.querySelector(%s); if (el) { el.click(); return true; } return false; })()`,
		strconv.Quote(selector),
	)
	octx, cancel := s.opContext()
	defer cancel()
	var clicked bool
	if err := chromedp.Run(octx, chromedp.Evaluate(expr, &clicked)); err != nil {
		return fmt.Errorf("click %q: %w", selector, err)
	}
	if clicked {
		s.log.Debug().Str("selector", selector).Msg("Clicked element")
	}
	return nil
}

// Close shuts the browser down
func (s *ChromeSession) Close() error {
	for _, cancel := range s.cancels {
		cancel()
	}
	return nil
}
