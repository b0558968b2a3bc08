package usecases

import (
	"context"
	"fmt"

	"nasa-poster/internal/domain"
	"nasa-poster/pkg/log"
)

// ArchiveSource reads the feed listing and variant collections.
type ArchiveSource interface {
	FetchListing(ctx context.Context) ([]domain.Asset, error)
	FetchVariants(ctx context.Context, collectionURL string) (domain.VariantCollection, error)
}

// Publisher submits a composed post.
type Publisher interface {
	Publish(ctx context.Context, post *domain.Post) (*domain.PublishedPost, error)
}

// PublishAssetUseCase runs one end-to-end posting pass.
type PublishAssetUseCase struct {
	archive   ArchiveSource
	picker    *PickAssetUseCase
	resolver  *ResolveImageUseCase
	composer  *ComposePostUseCase
	publisher Publisher
}

// NewPublishAssetUseCase creates a new PublishAssetUseCase.
func NewPublishAssetUseCase(
	archive ArchiveSource,
	picker *PickAssetUseCase,
	resolver *ResolveImageUseCase,
	composer *ComposePostUseCase,
	publisher Publisher,
) *PublishAssetUseCase {
	return &PublishAssetUseCase{
		archive:   archive,
		picker:    picker,
		resolver:  resolver,
		composer:  composer,
		publisher: publisher,
	}
}

// Execute picks an asset, resolves its image and publishes the post.
// Nothing is published unless every step succeeds.
func (uc *PublishAssetUseCase) Execute(ctx context.Context) (*domain.PublishedPost, error) {
	listing, err := uc.archive.FetchListing(ctx)
	if err != nil {
		return nil, err
	}

	asset, err := uc.picker.Execute(ctx, listing)
	if err != nil {
		return nil, err
	}
	ctx = log.WithFields(ctx, "nasa_id", asset.ID, "media_type", string(asset.MediaKind))

	if err := asset.Validate(); err != nil {
		return nil, err
	}

	purpose, err := domain.PurposeFor(asset.MediaKind)
	if err != nil {
		return nil, err
	}

	if asset.CollectionURL == "" {
		return nil, &domain.MetadataError{AssetID: asset.ID, Fields: []string{"href"}}
	}

	variants, err := uc.archive.FetchVariants(ctx, asset.CollectionURL)
	if err != nil {
		return nil, err
	}
	log.GlobalDebugCtx(ctx, "variant collection fetched", "variants", len(variants))

	image, err := uc.resolver.Execute(ctx, purpose, variants)
	if err != nil {
		return nil, fmt.Errorf("resolve image for %s: %w", asset.ID, err)
	}

	post, err := uc.composer.Execute(ctx, asset, image)
	if err != nil {
		return nil, err
	}

	published, err := uc.publisher.Publish(ctx, post)
	if err != nil {
		return nil, err
	}

	log.GlobalInfoCtx(ctx, "post published", "uri", published.URI, "image", image.SourceURL)
	return published, nil
}
