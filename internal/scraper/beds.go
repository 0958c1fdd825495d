package scraper

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"stayscan/hotelworker/logger"
)

// ExtractBedConfig scans the bed-type elements of a room card. An element
// whose text mentions "bed" is parsed for a count and type: the first
// numeric token becomes the count and the tokens from the following
// bed-word onward become the type. The first successful parse wins.
// Elements without "bed" in their text go to Extra verbatim.
func ExtractBedConfig(room *goquery.Selection, selectors Selectors, log *logger.Logger) *BedConfig {
	cfg := &BedConfig{}

	room.Find(selectors.BedTypes).Each(func(_ int, el *goquery.Selection) {
		text := strings.TrimSpace(el.Text())
		if text == "" {
			return
		}
		lower := strings.ToLower(text)
		if !strings.Contains(lower, "bed") {
			cfg.Extra = append(cfg.Extra, text)
			return
		}
		if cfg.Count != nil {
			return
		}
		parseBedText(lower, cfg)
	})

	if cfg.Count != nil {
		log.Debug().Int("count", *cfg.Count).Str("type", cfg.Type).Msg("Extracted bed config")
	}
	return cfg
}

// parseBedText looks for the first numeric token followed, not necessarily
// immediately, by a token containing "bed". "2 queen beds in room" yields
// count 2 and type "beds in room".
func parseBedText(text string, cfg *BedConfig) {
	parts := strings.Fields(text)
	for i, part := range parts {
		if !isDigits(part) {
			continue
		}
		for j := i + 1; j < len(parts); j++ {
			if strings.Contains(parts[j], "bed") {
				count, err := strconv.Atoi(part)
				if err != nil {
					return
				}
				cfg.Count = &count
				cfg.Type = strings.Join(parts[j:], " ")
				return
			}
		}
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
