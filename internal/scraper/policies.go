package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"stayscan/hotelworker/logger"
)

// ExtractPolicies classifies each policy element of a room card by
// substring match, case-insensitive, in fixed priority order: cancellation,
// then check-in, then check-out, everything else to special conditions.
// Each element feeds at most one bucket.
func ExtractPolicies(room *goquery.Selection, selectors Selectors, log *logger.Logger) *Policies {
	policies := &Policies{}

	room.Find(selectors.PolicyItem).Each(func(_ int, el *goquery.Selection) {
		text := strings.TrimSpace(el.Text())
		if text == "" {
			return
		}
		lower := strings.ToLower(text)
		switch {
		case strings.Contains(lower, "cancellation"):
			policies.Cancellation = text
		case strings.Contains(lower, "check-in"):
			policies.CheckIn = text
		case strings.Contains(lower, "check-out"):
			policies.CheckOut = text
		default:
			policies.SpecialConditions = append(policies.SpecialConditions, text)
		}
	})

	if !policies.Empty() {
		log.Debug().Msg("Extracted policies")
	}
	return policies
}
