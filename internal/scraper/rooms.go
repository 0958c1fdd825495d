package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"stayscan/hotelworker/logger"
)

// ExtractRooms assembles a RoomRecord for each located room card, in card
// order. Every field is best-effort; a record that ends up carrying no
// information at all is discarded rather than emitted.
func ExtractRooms(cards []*goquery.Selection, selectors Selectors, log *logger.Logger) []RoomRecord {
	rooms := make([]RoomRecord, 0, len(cards))

	for _, card := range cards {
		room := RoomRecord{}

		if typeEl := card.Find(selectors.RoomType).First(); typeEl.Length() > 0 {
			room.Type = strings.TrimSpace(typeEl.Text())
		}

		if priceEl := card.Find(selectors.RoomPrice).First(); priceEl.Length() > 0 {
			room.Price = ExtractPrice(priceEl, selectors, log)
		}

		if provider := card.Find(selectors.RoomProvider).First(); provider.Length() > 0 {
			room.Provider = strings.TrimSpace(provider.AttrOr("alt", ""))
		}

		if size := FindWithText(card, selectors.RoomAmenity, "sq ft").First(); size.Length() > 0 {
			room.Size = strings.TrimSpace(size.Text())
		}
		if view := FindWithText(card, selectors.RoomAmenity, "view").First(); view.Length() > 0 {
			room.View = strings.TrimSpace(view.Text())
		}

		bedConfig := ExtractBedConfig(card, selectors, log)
		if !bedConfig.Empty() {
			room.BedConfig = bedConfig
		}

		policies := ExtractPolicies(card, selectors, log)
		if !policies.Empty() {
			room.Policies = policies
		}

		if room.Empty() {
			log.Debug().Msg("Dropping room card with no extractable fields")
			continue
		}

		rooms = append(rooms, room)
		log.Info().Str("room_type", room.Type).Msg("Extracted room")
	}

	return rooms
}
