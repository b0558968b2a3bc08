package usecases

import (
	"strings"

	"nasa-poster/internal/domain"
)

// VariantMarkers are the naming-convention substrings used to recognise renditions.
type VariantMarkers struct {
	Original   string // e.g. "~orig"
	Thumbnail  string // e.g. "~thumb.jpg"
	JPEGSuffix string // e.g. ".jpg"
}

// DefaultVariantMarkers returns the archive's naming conventions.
func DefaultVariantMarkers() VariantMarkers {
	return VariantMarkers{
		Original:   "~orig",
		Thumbnail:  "~thumb.jpg",
		JPEGSuffix: ".jpg",
	}
}

// SelectVariant picks the preferred URL of a collection for the given purpose.
// It never fails on a non-empty collection; an empty one yields "".
func SelectVariant(purpose domain.Purpose, variants domain.VariantCollection, markers VariantMarkers) string {
	if len(variants) == 0 {
		return ""
	}

	switch purpose {
	case domain.PurposeThumbnail:
		if url, ok := firstMatch(variants, func(v string) bool { return strings.Contains(v, markers.Thumbnail) }); ok {
			return url
		}
		if url, ok := firstMatch(variants, func(v string) bool { return strings.HasSuffix(v, markers.JPEGSuffix) }); ok {
			return url
		}
	default:
		if url, ok := firstMatch(variants, func(v string) bool { return strings.Contains(v, markers.Original) }); ok {
			return url
		}
	}

	return variants[0]
}

func firstMatch(variants domain.VariantCollection, match func(string) bool) (string, bool) {
	for _, v := range variants {
		if match(v) {
			return v, true
		}
	}
	return "", false
}
