package domain

import "time"

// FacetKind identifies the rich-text feature a facet annotates.
type FacetKind string

const (
	FacetLink    FacetKind = "link"
	FacetTag     FacetKind = "tag"
	FacetMention FacetKind = "mention"
)

// Facet annotates a UTF-8 byte range of the post text.
type Facet struct {
	ByteStart int
	ByteEnd   int
	Kind      FacetKind
	Value     string // URI for links, tag without '#', DID for mentions
}

// EmbeddedImage pairs an uploaded image with its alt text.
type EmbeddedImage struct {
	Alt   string
	Image ValidatedImage
}

// Post is a composed post ready for submission.
type Post struct {
	Text      string
	Facets    []Facet
	CreatedAt time.Time
	Images    []EmbeddedImage
}

// PublishedPost identifies a post after the service accepted it.
type PublishedPost struct {
	URI string // AT-URI
	CID string
}
