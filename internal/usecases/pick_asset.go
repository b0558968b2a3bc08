package usecases

import (
	"context"
	"math/rand"

	"nasa-poster/internal/domain"
	"nasa-poster/pkg/log"
)

// Randomizer draws a uniform index in [0, n).
type Randomizer interface {
	IntN(n int) int
}

// globalRand draws from the math/rand top-level source.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.Intn(n) }

// DefaultRandomizer returns the process-wide random source.
func DefaultRandomizer() Randomizer { return globalRand{} }

// PickAssetUseCase chooses one asset from the feed listing.
type PickAssetUseCase struct {
	rng      Randomizer
	excluded domain.MediaKind
}

// NewPickAssetUseCase creates a new PickAssetUseCase skipping the excluded media kind.
func NewPickAssetUseCase(rng Randomizer, excluded domain.MediaKind) *PickAssetUseCase {
	if rng == nil {
		rng = DefaultRandomizer()
	}
	return &PickAssetUseCase{
		rng:      rng,
		excluded: excluded,
	}
}

// Execute filters out the excluded kind and draws uniformly from what remains.
func (uc *PickAssetUseCase) Execute(ctx context.Context, listing []domain.Asset) (*domain.Asset, error) {
	if len(listing) == 0 {
		return nil, domain.ErrEmptyFeed
	}

	eligible := make([]domain.Asset, 0, len(listing))
	for _, entry := range listing {
		if entry.MediaKind == uc.excluded {
			continue
		}
		eligible = append(eligible, entry)
	}

	if len(eligible) == 0 {
		return nil, domain.ErrNoEligibleAsset
	}

	picked := eligible[uc.rng.IntN(len(eligible))]
	log.GlobalDebugCtx(ctx, "asset picked",
		"nasa_id", picked.ID,
		"media_type", string(picked.MediaKind),
		"eligible", len(eligible),
		"listed", len(listing),
	)

	return &picked, nil
}
