package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"stayscan/hotelworker/logger"
)

// ExtractPrice parses a price element into a PriceInfo. The display text is
// split on whitespace; when it has at least two tokens, the first rune of
// the first token is taken as the currency symbol and the rest of that
// token as the amount. This is a heuristic, not a validated parser:
// multi-rune currency codes and thousands separators pass through as-is.
// The total and taxes/fees sub-elements are probed independently.
func ExtractPrice(sel *goquery.Selection, selectors Selectors, log *logger.Logger) *PriceInfo {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return nil
	}

	info := &PriceInfo{}

	parts := strings.Fields(text)
	if len(parts) >= 2 {
		runes := []rune(parts[0])
		info.CurrencySymbol = string(runes[0])
		info.Amount = string(runes[1:])
	}

	if strings.Contains(strings.ToLower(text), "night") {
		perNight := true
		info.PerNight = &perNight
	}

	if total := sel.Find(selectors.PriceTotal); total.Length() > 0 {
		info.Total = strings.TrimSpace(total.First().Text())
	}
	if taxes := sel.Find(selectors.PriceTaxesFees); taxes.Length() > 0 {
		info.TaxesFees = strings.TrimSpace(taxes.First().Text())
	}

	log.Debug().
		Str("currency", info.CurrencySymbol).
		Str("amount", info.Amount).
		Msg("Extracted price")

	return info
}
