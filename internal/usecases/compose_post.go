package usecases

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"nasa-poster/internal/domain"
)

const (
	// MaxPostGraphemes is the posting service's text limit.
	MaxPostGraphemes = 300

	// DefaultDetailsURL is the deep-link pattern for an asset page.
	DefaultDetailsURL = "https://images.nasa.gov/details/{nasa_id}"

	ellipsis = "…"
)

// FacetDetector finds links, tags and mentions in post text.
type FacetDetector interface {
	DetectFacets(ctx context.Context, text string) ([]domain.Facet, error)
}

// ComposePostUseCase builds the post body and embed for an asset.
type ComposePostUseCase struct {
	detector   FacetDetector
	detailsURL string
	now        func() time.Time
}

// NewComposePostUseCase creates a new ComposePostUseCase.
// detailsURL must contain the {nasa_id} placeholder; now defaults to time.Now.
func NewComposePostUseCase(detector FacetDetector, detailsURL string, now func() time.Time) *ComposePostUseCase {
	if detailsURL == "" {
		detailsURL = DefaultDetailsURL
	}
	if now == nil {
		now = time.Now
	}
	return &ComposePostUseCase{
		detector:   detector,
		detailsURL: detailsURL,
		now:        now,
	}
}

// Execute composes "{title}\n\n{details link}" with the image as its only embed.
func (uc *ComposePostUseCase) Execute(ctx context.Context, asset *domain.Asset, image *domain.ValidatedImage) (*domain.Post, error) {
	if err := asset.Validate(); err != nil {
		return nil, err
	}

	link := DetailsURL(uc.detailsURL, asset.ID)
	text := composeText(asset.Title, link)

	facets, err := uc.detector.DetectFacets(ctx, text)
	if err != nil {
		return nil, err
	}

	return &domain.Post{
		Text:      text,
		Facets:    facets,
		CreatedAt: uc.now().UTC(),
		Images: []domain.EmbeddedImage{
			{Alt: asset.Description, Image: *image},
		},
	}, nil
}

// DetailsURL expands the deep-link pattern for an asset id. The id is
// path-escaped, so the result matches plain substitution only for ids that
// need no escaping, such as "PIA12345" or "as11-40-5874".
func DetailsURL(pattern, nasaID string) string {
	return strings.ReplaceAll(pattern, "{nasa_id}", url.PathEscape(nasaID))
}

// composeText joins title and link, shortening the title so the link always fits.
func composeText(title, link string) string {
	suffix := "\n\n" + link
	text := title + suffix
	if uniseg.GraphemeClusterCount(text) <= MaxPostGraphemes {
		return text
	}

	budget := MaxPostGraphemes - uniseg.GraphemeClusterCount(suffix) - uniseg.GraphemeClusterCount(ellipsis)
	if budget <= 0 {
		return link
	}
	return truncateGraphemes(title, budget) + ellipsis + suffix
}

// truncateGraphemes keeps at most n grapheme clusters of s, dropping trailing spaces.
func truncateGraphemes(s string, n int) string {
	var b strings.Builder
	state := -1
	rest := s
	for i := 0; i < n && rest != ""; i++ {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		b.WriteString(cluster)
	}
	return strings.TrimRight(b.String(), " \t\n")
}
