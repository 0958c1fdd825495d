package scraper

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"stayscan/hotelworker/helpers"
	"stayscan/hotelworker/logger"
)

// BuildHotelRecord extracts the basic record of one search-result card.
// Name and detail URL are required: without them the card is unusable and
// nil is returned so the caller can skip it and continue. Every other
// field is attempted independently and left unset on failure.
func BuildHotelRecord(card *goquery.Selection, selectors Selectors, baseURL string, log *logger.Logger) *HotelRecord {
	nameEl := card.Find(selectors.HotelName).First()
	if nameEl.Length() == 0 {
		log.Warn().Msg("Could not find hotel name/URL")
		return nil
	}

	name := strings.TrimSpace(nameEl.Text())
	href := strings.TrimSpace(nameEl.AttrOr("href", ""))
	if name == "" || href == "" {
		log.Warn().Msg("Hotel card has no usable name or detail URL")
		return nil
	}

	record := &HotelRecord{
		Name:      name,
		DetailURL: resolveURL(baseURL, href),
	}

	if loc := card.Find(selectors.HotelLocation).First(); loc.Length() > 0 {
		record.Location = strings.TrimSpace(loc.Text())
	}
	if desc := card.Find(selectors.HotelDescription).First(); desc.Length() > 0 {
		record.Description = strings.TrimSpace(desc.Text())
	}
	if stars := card.Find(selectors.HotelStars).First(); stars.Length() > 0 {
		record.Stars = helpers.FirstToken(stars.Text())
	}
	if price := card.Find(selectors.HotelPrice).First(); price.Length() > 0 {
		record.Price = strings.TrimSpace(price.Text())
	}

	record.Rating = extractRating(card, selectors, log)
	record.AddImages(ExtractCardImages(card, selectors, log)...)

	log.Info().Str("hotel", record.Name).Msg("Extracted basic info")
	return record
}

// extractRating parses the rating value and digits-only review count. A
// missing rating element leaves the whole field absent; a present but
// unparsable one yields an empty RatingInfo rather than aborting the card.
func extractRating(card *goquery.Selection, selectors Selectors, log *logger.Logger) *RatingInfo {
	ratingEl := card.Find(selectors.HotelRating).First()
	if ratingEl.Length() == 0 {
		return nil
	}

	rating := &RatingInfo{}

	value, err := strconv.ParseFloat(strings.TrimSpace(ratingEl.Text()), 64)
	if err != nil {
		log.Debug().Err(err).Msg("Unparsable rating value")
		return rating
	}
	rating.Value = &value

	reviews := card.Find(selectors.HotelReviews).First()
	if digits := helpers.Digits(reviews.Text()); digits != "" {
		if count, err := strconv.Atoi(digits); err == nil {
			rating.Count = &count
		}
	}

	return rating
}

// resolveURL makes a card href absolute against the crawl base URL
func resolveURL(baseURL, href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
