// Package domain contains the core business entities and rules.
package domain

import "strings"

// MediaKind is the media_type of an archive entry.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

// Purpose decides which variant naming convention is preferred.
type Purpose int

const (
	PurposeFullImage Purpose = iota
	PurposeThumbnail
)

// String returns the purpose name used in logs.
func (p Purpose) String() string {
	switch p {
	case PurposeFullImage:
		return "full_image"
	case PurposeThumbnail:
		return "thumbnail"
	default:
		return "unknown"
	}
}

// PurposeFor maps a media kind to the rendition the post should embed.
// Images embed the original; videos embed a still thumbnail.
func PurposeFor(kind MediaKind) (Purpose, error) {
	switch kind {
	case MediaImage:
		return PurposeFullImage, nil
	case MediaVideo:
		return PurposeThumbnail, nil
	default:
		return 0, &MediaKindError{Kind: kind}
	}
}

// Asset is one entry of the archive feed listing.
type Asset struct {
	ID            string // nasa_id
	MediaKind     MediaKind
	Title         string
	Description   string
	CollectionURL string // href of the variant collection document
}

// Validate checks the fields a post cannot be composed without.
func (a *Asset) Validate() error {
	var missing []string
	if strings.TrimSpace(a.ID) == "" {
		missing = append(missing, "nasa_id")
	}
	if strings.TrimSpace(a.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(a.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return &MetadataError{AssetID: a.ID, Fields: missing}
	}
	return nil
}

// VariantCollection is the ordered list of rendition URLs of one asset.
// Order is feed-supplied and doubles as the fallback order.
type VariantCollection []string

// BlobRef is the opaque reference returned by the blob store after upload.
type BlobRef struct {
	CID      string
	MimeType string
	Size     int64
}

// ValidatedImage is an image that passed the type/size policy and was uploaded.
type ValidatedImage struct {
	Blob        BlobRef
	SourceURL   string
	ContentType string
	Size        int64

	// Width and Height are zero when the format could not be decoded.
	Width  int
	Height int
}

// HasDimensions reports whether the aspect ratio is known.
func (v *ValidatedImage) HasDimensions() bool {
	return v.Width > 0 && v.Height > 0
}
