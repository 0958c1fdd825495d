package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"stayscan/hotelworker/logger"
)

var testLog = logger.ForScraper()

// parseFragment parses an HTML snippet and returns its first top-level
// element, matching how the locator hands fragments to the extractors.
func parseFragment(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	sel := doc.Find("body").Children().First()
	require.Positive(t, sel.Length(), "fixture did not parse to an element")
	return sel
}

// parsePage parses a full detail-page snippet and returns its body scope
func parsePage(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Find("body")
}
