package bluesky

import (
	"fmt"

	"github.com/bluesky-social/indigo/api/bsky"
	lexutil "github.com/bluesky-social/indigo/lex/util"
	"github.com/ipfs/go-cid"

	"nasa-poster/internal/domain"
)

// newPostRecord converts a composed post into its lexicon record.
func newPostRecord(post *domain.Post) (*bsky.FeedPost, error) {
	rec := &bsky.FeedPost{
		LexiconTypeID: collectionFeedPost,
		Text:          post.Text,
		CreatedAt:     post.CreatedAt.UTC().Format(createdAtLayout),
	}

	for _, f := range post.Facets {
		feature, ok := facetFeatureFor(f)
		if !ok {
			continue
		}
		rec.Facets = append(rec.Facets, &bsky.RichtextFacet{
			Index:    &bsky.RichtextFacet_ByteSlice{ByteStart: int64(f.ByteStart), ByteEnd: int64(f.ByteEnd)},
			Features: []*bsky.RichtextFacet_Features_Elem{feature},
		})
	}

	if len(post.Images) == 0 {
		return rec, nil
	}

	embed := &bsky.EmbedImages{LexiconTypeID: "app.bsky.embed.images"}
	for _, img := range post.Images {
		blob, err := lexBlob(img.Image.Blob)
		if err != nil {
			return nil, err
		}
		ei := &bsky.EmbedImages_Image{Alt: img.Alt, Image: blob}
		if img.Image.HasDimensions() {
			ei.AspectRatio = &bsky.EmbedImages_AspectRatio{
				Width:  int64(img.Image.Width),
				Height: int64(img.Image.Height),
			}
		}
		embed.Images = append(embed.Images, ei)
	}
	rec.Embed = &bsky.FeedPost_Embed{EmbedImages: embed}

	return rec, nil
}

// lexBlob rebuilds the uploaded blob reference for embedding.
func lexBlob(ref domain.BlobRef) (*lexutil.LexBlob, error) {
	c, err := cid.Decode(ref.CID)
	if err != nil {
		return nil, fmt.Errorf("blob ref %q: %w", ref.CID, err)
	}
	return &lexutil.LexBlob{
		Ref:      lexutil.LexLink(c),
		MimeType: ref.MimeType,
		Size:     ref.Size,
	}, nil
}

func facetFeatureFor(f domain.Facet) (*bsky.RichtextFacet_Features_Elem, bool) {
	switch f.Kind {
	case domain.FacetLink:
		return &bsky.RichtextFacet_Features_Elem{RichtextFacet_Link: &bsky.RichtextFacet_Link{Uri: f.Value}}, true
	case domain.FacetTag:
		return &bsky.RichtextFacet_Features_Elem{RichtextFacet_Tag: &bsky.RichtextFacet_Tag{Tag: f.Value}}, true
	case domain.FacetMention:
		return &bsky.RichtextFacet_Features_Elem{RichtextFacet_Mention: &bsky.RichtextFacet_Mention{Did: f.Value}}, true
	default:
		return nil, false
	}
}
