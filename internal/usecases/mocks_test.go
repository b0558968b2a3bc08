package usecases_test

import (
	"context"
	"sync"

	"nasa-poster/internal/domain"
	"nasa-poster/internal/usecases"
)

// MockFetcher returns scripted outcomes per URL and records every attempt.
// Unscripted URLs are rejected.
type MockFetcher struct {
	mu       sync.Mutex
	outcomes map[string]usecases.FetchOutcome
	calls    []string
	uploads  int
}

func NewMockFetcher(outcomes map[string]usecases.FetchOutcome) *MockFetcher {
	return &MockFetcher{outcomes: outcomes}
}

func (m *MockFetcher) FetchAndValidate(ctx context.Context, url string) usecases.FetchOutcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, url)
	outcome, ok := m.outcomes[url]
	if !ok {
		return usecases.Rejected("not an image")
	}
	if outcome.Kind == usecases.OutcomeAccepted {
		m.uploads++
	}
	return outcome
}

func (m *MockFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func acceptedImage(url string) usecases.FetchOutcome {
	return usecases.Accepted(&domain.ValidatedImage{
		Blob:        domain.BlobRef{CID: "bafkrei-" + url, MimeType: "image/jpeg", Size: 4096},
		SourceURL:   url,
		ContentType: "image/jpeg",
		Size:        4096,
	})
}

// MockRandomizer always returns index and records the bound it was asked for.
type MockRandomizer struct {
	index int
	bound int
}

func (m *MockRandomizer) IntN(n int) int {
	m.bound = n
	if m.index >= n {
		return n - 1
	}
	return m.index
}

// MockFacetDetector returns fixed facets and records the texts it saw.
type MockFacetDetector struct {
	facets []domain.Facet
	err    error
	texts  []string
}

func (m *MockFacetDetector) DetectFacets(ctx context.Context, text string) ([]domain.Facet, error) {
	m.texts = append(m.texts, text)
	return m.facets, m.err
}

// MockArchive serves a fixed listing and per-URL variant collections.
type MockArchive struct {
	listing      []domain.Asset
	listingErr   error
	variants     map[string]domain.VariantCollection
	variantCalls []string
}

func (m *MockArchive) FetchListing(ctx context.Context) ([]domain.Asset, error) {
	return m.listing, m.listingErr
}

func (m *MockArchive) FetchVariants(ctx context.Context, collectionURL string) (domain.VariantCollection, error) {
	m.variantCalls = append(m.variantCalls, collectionURL)
	v, ok := m.variants[collectionURL]
	if !ok {
		return nil, &domain.TransportError{Op: "GET", URL: collectionURL, StatusCode: 404}
	}
	return v, nil
}

// MockPublisher records published posts.
type MockPublisher struct {
	posts []*domain.Post
	err   error
}

func (m *MockPublisher) Publish(ctx context.Context, post *domain.Post) (*domain.PublishedPost, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.posts = append(m.posts, post)
	return &domain.PublishedPost{URI: "at://did:plc:test/app.bsky.feed.post/1", CID: "bafyrei1"}, nil
}
