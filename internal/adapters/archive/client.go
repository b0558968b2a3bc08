// Package archive reads the NASA Image and Video Library feed listing and
// per-asset variant collections.
package archive

import (
	"context"
	"fmt"
	"io"

	"nasa-poster/internal/adapters/httpclient"
	"nasa-poster/internal/domain"
	"nasa-poster/pkg/log"
)

// DefaultFeedURL is the "recent" listing of the public archive.
const DefaultFeedURL = "https://images-assets.nasa.gov/recent.json"

// maxCollectionBytes bounds a variant collection document.
const maxCollectionBytes = 4 << 20

// Client implements usecases.ArchiveSource over HTTP.
type Client struct {
	http    *httpclient.Client
	feedURL string
}

// NewClient creates an archive client. An empty feedURL uses DefaultFeedURL.
func NewClient(http *httpclient.Client, feedURL string) *Client {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	return &Client{http: http, feedURL: feedURL}
}

// FetchListing downloads the feed and maps every item to an asset, preserving order.
func (c *Client) FetchListing(ctx context.Context) ([]domain.Asset, error) {
	var doc feedDocument
	if err := c.http.GetJSON(ctx, c.feedURL, &doc); err != nil {
		return nil, fmt.Errorf("fetch feed listing: %w", err)
	}

	assets := make([]domain.Asset, 0, len(doc.Collection.Items))
	for _, item := range doc.Collection.Items {
		assets = append(assets, item.toAsset())
	}

	log.GlobalDebugCtx(ctx, "feed listing fetched", "url", c.feedURL, "entries", len(assets))
	return assets, nil
}

// FetchVariants downloads the variant collection document at collectionURL.
func (c *Client) FetchVariants(ctx context.Context, collectionURL string) (domain.VariantCollection, error) {
	resp, err := c.http.Get(ctx, collectionURL)
	if err != nil {
		return nil, fmt.Errorf("fetch variant collection: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxCollectionBytes))
	if err != nil {
		return nil, &domain.TransportError{Op: "read variant collection", URL: collectionURL, Err: err}
	}

	variants, err := decodeVariants(raw)
	if err != nil {
		return nil, &domain.TransportError{Op: "decode variant collection", URL: collectionURL, Err: err}
	}

	log.GlobalDebugCtx(ctx, "variant collection fetched", "url", collectionURL, "variants", len(variants))
	return variants, nil
}
