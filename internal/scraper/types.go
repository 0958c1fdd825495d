package scraper

// ImageKind identifies where an image was discovered
type ImageKind string

const (
	ImageMain    ImageKind = "main"
	ImageHighRes ImageKind = "high_res"
	ImageMobile  ImageKind = "mobile"
	ImageDetail  ImageKind = "detail"
)

// ImageRef is one discovered hotel image
type ImageRef struct {
	URL  string    `json:"url"`
	Alt  string    `json:"alt,omitempty"`
	Kind ImageKind `json:"type"`
}

// RatingInfo holds the review score of a hotel. Both fields stay nil when
// the rating or review count could not be parsed.
type RatingInfo struct {
	Value *float64 `json:"rating"`
	Count *int     `json:"count"`
}

// PriceInfo is the parsed display price of a room offer. Amount stays a
// string; the site mixes currencies and separators and no numeric
// normalization is attempted here.
type PriceInfo struct {
	CurrencySymbol string `json:"currency,omitempty"`
	Amount         string `json:"amount,omitempty"`
	PerNight       *bool  `json:"per_night,omitempty"`
	Total          string `json:"total,omitempty"`
	TaxesFees      string `json:"taxes_fees,omitempty"`
}

// BedConfig describes the bed setup of a room
type BedConfig struct {
	Type  string   `json:"type,omitempty"`
	Count *int     `json:"count,omitempty"`
	Extra []string `json:"extra,omitempty"`
}

// Empty reports whether no bed information was found
func (b *BedConfig) Empty() bool {
	return b == nil || (b.Type == "" && b.Count == nil && len(b.Extra) == 0)
}

// Policies holds the booking conditions attached to a room offer
type Policies struct {
	Cancellation      string   `json:"cancellation,omitempty"`
	CheckIn           string   `json:"checkin,omitempty"`
	CheckOut          string   `json:"checkout,omitempty"`
	SpecialConditions []string `json:"special_conditions,omitempty"`
}

// Empty reports whether no policy information was found
func (p *Policies) Empty() bool {
	return p == nil || (p.Cancellation == "" && p.CheckIn == "" && p.CheckOut == "" &&
		len(p.SpecialConditions) == 0)
}

// RoomRecord is one bookable room option within a hotel
type RoomRecord struct {
	Type      string     `json:"room_type,omitempty"`
	Price     *PriceInfo `json:"price,omitempty"`
	Provider  string     `json:"provider,omitempty"`
	Size      string     `json:"size,omitempty"`
	View      string     `json:"view,omitempty"`
	BedConfig *BedConfig `json:"bed_config,omitempty"`
	Policies  *Policies  `json:"policies,omitempty"`
}

// Empty reports whether the record carries no information at all. Empty
// records are never emitted.
func (r *RoomRecord) Empty() bool {
	return r.Type == "" && r.Price == nil && r.Provider == "" &&
		r.Size == "" && r.View == "" &&
		r.BedConfig.Empty() && r.Policies.Empty()
}

// HotelRecord is one scraped hotel listing
type HotelRecord struct {
	Name        string              `json:"hotel_name"`
	DetailURL   string              `json:"detail_url"`
	Location    string              `json:"location,omitempty"`
	Description string              `json:"description,omitempty"`
	Stars       string              `json:"stars,omitempty"`
	Price       string              `json:"price,omitempty"`
	Rating      *RatingInfo         `json:"review_scores,omitempty"`
	Images      []ImageRef          `json:"images"`
	Rooms       []RoomRecord        `json:"rooms,omitempty"`
	Amenities   map[string][]string `json:"amenities,omitempty"`

	imageSeen map[string]bool
}

// AddImages appends image refs in discovery order, dropping any whose URL
// was already collected. The first-discovered kind wins.
func (h *HotelRecord) AddImages(refs ...ImageRef) {
	if h.imageSeen == nil {
		h.imageSeen = make(map[string]bool, len(refs))
		for _, img := range h.Images {
			h.imageSeen[img.URL] = true
		}
	}
	for _, ref := range refs {
		if ref.URL == "" || h.imageSeen[ref.URL] {
			continue
		}
		h.imageSeen[ref.URL] = true
		h.Images = append(h.Images, ref)
	}
}

// Pagination is a constant stub; multi-page search is not implemented
type Pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

// Metadata describes one crawl pass
type Metadata struct {
	ScrapingDate string `json:"scraping_date"`
	ScrapingTime string `json:"scraping_time"`
	SourceURL    string `json:"source_url"`
}

// Document is the wrapped crawl output
type Document struct {
	City       string        `json:"city"`
	Hotels     []HotelRecord `json:"hotels"`
	Pagination Pagination    `json:"pagination"`
	Metadata   Metadata      `json:"metadata"`
}
