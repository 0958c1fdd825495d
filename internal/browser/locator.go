package browser

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"stayscan/hotelworker/helpers"
	"stayscan/hotelworker/logger"
	apperr "stayscan/hotelworker/pkg/errors"
)

// Locator resolves CSS selectors against the live page into goquery
// snapshots. It polls until the selector matches or the timeout elapses;
// session failures (a node detaching mid-capture, a hiccup in the devtools
// channel) are retried a fixed number of times and then demoted to "not
// found". Callers never see an error: an absent element and a permanently
// broken one look the same, because callers treat them the same.
type Locator struct {
	session      Session
	pollInterval time.Duration
	staleRetries int
	staleDelay   time.Duration
	log          *logger.Logger
}

// NewLocator creates a locator over the given session
func NewLocator(session Session, pollInterval time.Duration, staleRetries int, staleDelay time.Duration) *Locator {
	if pollInterval <= 0 {
		pollInterval = 500 * time.Millisecond
	}
	return &Locator{
		session:      session,
		pollInterval: pollInterval,
		staleRetries: staleRetries,
		staleDelay:   staleDelay,
		log:          logger.ForBrowser(),
	}
}

// All returns a snapshot selection for every element matching the selector,
// in document order. It returns an empty slice when nothing matched within
// the timeout.
func (l *Locator) All(ctx context.Context, selector string, timeout time.Duration) []*goquery.Selection {
	deadline := time.Now().Add(timeout)
	staleLeft := l.staleRetries

	for {
		html, err := l.session.OuterHTML(ctx, selector)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if staleLeft > 0 {
				staleLeft--
				l.log.Debug().
					Str("selector", selector).
					Err(err).
					Int("retries_left", staleLeft).
					Msg("Element capture failed, retrying")
				if !helpers.SleepCtx(ctx, l.staleDelay) {
					return nil
				}
				continue
			}
			l.log.Warn().Str("selector", selector).Err(err).Msg("Element capture failed, giving up")
			return nil
		}

		if len(html) > 0 {
			return parseFragments(html, l.log)
		}

		if time.Now().After(deadline) || ctx.Err() != nil {
			l.log.Debug().Str("selector", selector).Msg("Selector never matched")
			return nil
		}
		if !helpers.SleepCtx(ctx, l.pollInterval) {
			return nil
		}
	}
}

// One returns a snapshot of the first element matching the selector, or nil
// when nothing matched within the timeout.
func (l *Locator) One(ctx context.Context, selector string, timeout time.Duration) *goquery.Selection {
	sels := l.All(ctx, selector, timeout)
	if len(sels) == 0 {
		return nil
	}
	return sels[0]
}

// Page snapshots the whole document body for relative lookups. Returns nil
// when the body could not be captured.
func (l *Locator) Page(ctx context.Context, timeout time.Duration) *goquery.Selection {
	deadline := time.Now().Add(timeout)
	staleLeft := l.staleRetries

	for {
		html, err := l.session.OuterHTML(ctx, "body")
		if err == nil && len(html) > 0 {
			doc, perr := goquery.NewDocumentFromReader(strings.NewReader(html[0]))
			if perr == nil {
				return doc.Find("body")
			}
			err = perr
		}
		if ctx.Err() != nil || time.Now().After(deadline) {
			return nil
		}
		if err != nil && staleLeft > 0 {
			staleLeft--
			if !helpers.SleepCtx(ctx, l.staleDelay) {
				return nil
			}
			continue
		}
		if !helpers.SleepCtx(ctx, l.pollInterval) {
			return nil
		}
	}
}

// WaitReady polls document.readyState until the page reports complete
func (l *Locator) WaitReady(ctx context.Context, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		state, err := l.session.ReadyState(ctx)
		if err == nil && state == "complete" {
			return true
		}
		if ctx.Err() != nil || time.Now().After(deadline) {
			return false
		}
		if !helpers.SleepCtx(ctx, l.pollInterval) {
			return false
		}
	}
}

// parseFragments turns captured outer-HTML fragments into element-rooted
// selections. Fragments that fail to parse are dropped.
func parseFragments(fragments []string, log *logger.Logger) []*goquery.Selection {
	sels := make([]*goquery.Selection, 0, len(fragments))
	for _, fragment := range fragments {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
		if err != nil {
			log.Warn().Err(apperr.NewParsing("fragment", "unparsable element snapshot", err)).Msg("Failed to parse element snapshot")
			continue
		}
		sel := doc.Find("body").Children().First()
		if sel.Length() == 0 {
			continue
		}
		sels = append(sels, sel)
	}
	return sels
}

