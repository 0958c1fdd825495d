package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"stayscan/hotelworker/helpers"
	"stayscan/hotelworker/logger"
)

// ExtractCardImages collects the images of one search-result card. Two
// independent probes run and their results concatenate: the direct img
// element yields one main entry plus high-res variants parsed from its
// srcset, and the picture element's source children yield mobile entries.
// Duplicate URLs are not suppressed here; that happens when the refs are
// collected into a HotelRecord.
func ExtractCardImages(card *goquery.Selection, selectors Selectors, log *logger.Logger) []ImageRef {
	container := card.Find(selectors.PhotoContainer)
	if container.Length() == 0 {
		log.Debug().Msg("Photo container not found on card")
		return nil
	}

	var images []ImageRef

	img := container.Find(selectors.Photo).First()
	if img.Length() > 0 {
		alt := img.AttrOr("alt", "")
		if src := strings.TrimSpace(img.AttrOr("src", "")); src != "" {
			images = append(images, ImageRef{URL: src, Alt: alt, Kind: ImageMain})
		}
		if srcset := img.AttrOr("srcset", ""); srcset != "" {
			for _, url := range helpers.SrcsetURLs(srcset) {
				images = append(images, ImageRef{URL: url, Alt: alt, Kind: ImageHighRes})
			}
		}
	}

	container.Find(selectors.PictureSource).Each(func(_ int, source *goquery.Selection) {
		srcset := strings.TrimSpace(source.AttrOr("srcset", ""))
		if srcset != "" {
			images = append(images, ImageRef{URL: srcset, Kind: ImageMobile})
		}
	})

	log.Debug().Int("count", len(images)).Msg("Extracted card images")
	return images
}

// ExtractDetailImages walks the detail-page photo gallery and returns one
// detail entry per photo item.
func ExtractDetailImages(page *goquery.Selection, selectors Selectors, log *logger.Logger) []ImageRef {
	var images []ImageRef

	page.Find(selectors.DetailPhotoItem).Each(func(_ int, item *goquery.Selection) {
		img := item.Find(selectors.DetailPhotoImage).First()
		if img.Length() == 0 {
			return
		}
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if src == "" {
			return
		}
		images = append(images, ImageRef{
			URL:  src,
			Alt:  img.AttrOr("alt", ""),
			Kind: ImageDetail,
		})
	})

	log.Debug().Int("count", len(images)).Msg("Extracted detail page images")
	return images
}
