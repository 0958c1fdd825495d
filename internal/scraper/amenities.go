package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"stayscan/hotelworker/helpers"
	"stayscan/hotelworker/logger"
)

// AmenityStrategy extracts the amenity map from a detail page snapshot.
// The site exposes two layouts; the crawler tries its strategies in order
// and keeps the first non-empty result.
type AmenityStrategy interface {
	Name() string
	Extract(page *goquery.Selection, selectors Selectors, log *logger.Logger) map[string][]string
}

var (
	generalKeywords = []string{"wifi", "parking", "pool", "restaurant", "gym"}
	roomKeywords    = []string{"bed", "tv", "bathroom", "air"}
)

// CategoryAmenities groups amenities by the explicit category headers of
// the detail page, plus the featured summary amenities at the top.
type CategoryAmenities struct{}

func (CategoryAmenities) Name() string { return "category" }

func (CategoryAmenities) Extract(page *goquery.Selection, selectors Selectors, log *logger.Logger) map[string][]string {
	amenities := make(map[string][]string)

	page.Find(selectors.AmenityCategory).Each(func(_ int, container *goquery.Selection) {
		category := strings.TrimSpace(container.Find(selectors.CategoryName).First().Text())
		if category == "" {
			return
		}
		container.Find(selectors.AmenityName).Each(func(_ int, el *goquery.Selection) {
			appendAmenity(amenities, category, strings.TrimSpace(el.Text()))
		})
	})

	page.Find(selectors.FeaturedAmenity).Each(func(_ int, el *goquery.Selection) {
		appendAmenity(amenities, "featured", strings.TrimSpace(el.Text()))
	})

	if len(amenities) > 0 {
		log.Debug().Int("categories", len(amenities)).Msg("Extracted categorized amenities")
	}
	return amenities
}

// KeywordAmenities classifies a flat amenity list into general, room and
// services buckets by keyword membership, in that priority order. Anything
// that matches no keyword falls through to services.
type KeywordAmenities struct{}

func (KeywordAmenities) Name() string { return "keyword" }

func (KeywordAmenities) Extract(page *goquery.Selection, selectors Selectors, log *logger.Logger) map[string][]string {
	amenities := make(map[string][]string)

	page.Find(selectors.AmenityFlat).Each(func(_ int, el *goquery.Selection) {
		text := strings.TrimSpace(el.Text())
		if text == "" {
			return
		}
		switch {
		case helpers.ContainsToken(text, generalKeywords):
			appendAmenity(amenities, "general", text)
		case helpers.ContainsToken(text, roomKeywords):
			appendAmenity(amenities, "room", text)
		default:
			appendAmenity(amenities, "services", text)
		}
	})

	if len(amenities) > 0 {
		log.Debug().Msg("Extracted keyword-classified amenities")
	}
	return amenities
}

// appendAmenity adds the amenity to the category, dropping empty strings
// and duplicates within the category.
func appendAmenity(amenities map[string][]string, category, text string) {
	if text == "" {
		return
	}
	for _, existing := range amenities[category] {
		if existing == text {
			return
		}
	}
	amenities[category] = append(amenities[category], text)
}
