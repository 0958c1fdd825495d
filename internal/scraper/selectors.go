package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors contains the CSS selectors for the Kayak hotel search and
// detail pages. They track one fixed page structure; selector drift on the
// site requires updating this table by hand.
type Selectors struct {
	// Search page hotel cards
	HotelCard        string
	HotelName        string
	HotelLocation    string
	HotelDescription string
	HotelStars       string
	HotelPrice       string
	HotelRating      string
	HotelReviews     string

	// Search card images
	PhotoContainer string
	Photo          string
	PictureSource  string

	// Detail page gallery
	DetailPhotoItem  string
	DetailPhotoImage string

	// Detail page rooms
	RoomCard     string
	RoomType     string
	RoomPrice    string
	RoomProvider string
	RoomAmenity  string
	BedTypes     string
	PolicyItem   string

	// Price sub-elements
	PriceTotal     string
	PriceTaxesFees string

	// Detail page amenities
	AmenityFlat     string
	AmenityCategory string
	CategoryName    string
	AmenityName     string
	FeaturedAmenity string

	// Popup dismissal, best effort
	PopupDismiss []string
}

// DefaultSelectors returns the selector table for the current Kayak markup
func DefaultSelectors() Selectors {
	return Selectors{
		HotelCard:        "div.S0Ps-resultInner",
		HotelName:        "a.FLpo-big-name",
		HotelLocation:    "div.upS4-big-name",
		HotelDescription: "div.b40a-desc-text",
		HotelStars:       "span.Ius0",
		HotelPrice:       "div.c1XBO",
		HotelRating:      "div.wdjx-positive",
		HotelReviews:     "div.xdhG-rating-description-and-count",

		PhotoContainer: ".e9fk-photoContainer",
		Photo:          "img.e9fk-photo",
		PictureSource:  "picture source",

		DetailPhotoItem:  ".f800.f800-mod-pres-default",
		DetailPhotoImage: ".f800-image",

		RoomCard:     "div.c5l3f",
		RoomType:     "div.c_Hjx-group-header-title",
		RoomPrice:    "span.C9NJ-amount",
		RoomProvider: "img.c2pAq-logo",
		RoomAmenity:  "span.c_Hjx-amenity",
		BedTypes:     ".c5NJT-bed-types, .BZag-bed-types",
		PolicyItem:   ".BZag-freebie, .lUp8 .BNDX",

		PriceTotal:     ".D9i2-total",
		PriceTaxesFees: ".D9i2-taxes-fees",

		AmenityFlat:     `[aria-label="Amenities"] .BNDX, .BNDX-mod-presentation-default`,
		AmenityCategory: ".kml-col-12-12.kml-col-6-12-m",
		CategoryName:    ".BxLB-category-name",
		AmenityName:     ".BxLB-amenity-name",
		FeaturedAmenity: ".t8Xi-amenity-name",

		PopupDismiss: []string{
			`button[aria-label="Close"]`,
			".close-button",
			".dismiss-button",
		},
	}
}

// FindWithText runs a CSS lookup under scope and keeps only elements whose
// text contains the given substring, case-insensitive. This stands in for
// the non-standard :contains() pseudo-selector.
func FindWithText(scope *goquery.Selection, selector, substring string) *goquery.Selection {
	lower := strings.ToLower(substring)
	return scope.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(strings.ToLower(s.Text()), lower)
	})
}
