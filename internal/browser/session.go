package browser

import "context"

// Session is the contract the scraper uses to drive a rendered page. One
// session backs one crawl; it is not safe for concurrent use and callers
// must serialize every navigation and lookup against it.
type Session interface {
	// Navigate loads the given URL in the page
	Navigate(ctx context.Context, url string) error

	// ReadyState returns the document ready state ("loading", "complete", ...)
	ReadyState(ctx context.Context) (string, error)

	// Evaluate runs a script in page context and decodes the result into out
	Evaluate(ctx context.Context, expr string, out interface{}) error

	// OuterHTML returns the outer HTML of every element matching the selector
	OuterHTML(ctx context.Context, selector string) ([]string, error)

	// Click clicks the first element matching the selector, if present
	Click(ctx context.Context, selector string) error

	// Close releases the underlying browser
	Close() error
}
