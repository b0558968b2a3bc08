package usecases

import (
	"context"
	"fmt"

	"nasa-poster/internal/domain"
	"nasa-poster/pkg/log"
)

// OutcomeKind tags the result of one fetch-and-validate attempt.
type OutcomeKind int

const (
	OutcomeAccepted OutcomeKind = iota
	OutcomeRejected
	OutcomeTransportFailure
)

// String returns the outcome name used in logs.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejected:
		return "rejected"
	case OutcomeTransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// FetchOutcome is the tagged result of ImageFetcher.FetchAndValidate.
// Image is set only for OutcomeAccepted, Err only for OutcomeTransportFailure.
type FetchOutcome struct {
	Kind   OutcomeKind
	Image  *domain.ValidatedImage
	Reason string // why the candidate was rejected
	Err    error
}

// Accepted builds an accepted outcome.
func Accepted(img *domain.ValidatedImage) FetchOutcome {
	return FetchOutcome{Kind: OutcomeAccepted, Image: img}
}

// Rejected builds a rejected outcome.
func Rejected(reason string) FetchOutcome {
	return FetchOutcome{Kind: OutcomeRejected, Reason: reason}
}

// TransportFailure builds a fatal outcome.
func TransportFailure(err error) FetchOutcome {
	return FetchOutcome{Kind: OutcomeTransportFailure, Err: err}
}

// ImageFetcher retrieves a candidate URL and validates and uploads it.
type ImageFetcher interface {
	FetchAndValidate(ctx context.Context, url string) FetchOutcome
}

// ResolveImageUseCase walks a variant collection until one candidate is accepted.
type ResolveImageUseCase struct {
	fetcher ImageFetcher
	markers VariantMarkers
}

// NewResolveImageUseCase creates a new ResolveImageUseCase.
func NewResolveImageUseCase(fetcher ImageFetcher, markers VariantMarkers) *ResolveImageUseCase {
	return &ResolveImageUseCase{
		fetcher: fetcher,
		markers: markers,
	}
}

// Execute returns the first accepted image, starting from the preferred variant.
//
// After a rejection the next candidate is variants[cursor] with the cursor starting
// at 0, so the preferred URL is revisited when it reappears in the sweep. Attempts
// stop after len(variants) tries. A transport failure ends resolution immediately.
func (uc *ResolveImageUseCase) Execute(ctx context.Context, purpose domain.Purpose, variants domain.VariantCollection) (*domain.ValidatedImage, error) {
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w: empty collection", domain.ErrNoValidImage)
	}

	candidate := SelectVariant(purpose, variants, uc.markers)
	log.GlobalDebugCtx(ctx, "preferred variant selected", "purpose", purpose.String(), "url", candidate)

	attempts := 0
	for cursor := 0; cursor < len(variants); {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attempts++
		outcome := uc.fetcher.FetchAndValidate(ctx, candidate)

		switch outcome.Kind {
		case OutcomeAccepted:
			log.GlobalInfoCtx(ctx, "variant accepted", "url", candidate, "attempt", attempts)
			return outcome.Image, nil
		case OutcomeTransportFailure:
			return nil, outcome.Err
		case OutcomeRejected:
			log.GlobalWarnCtx(ctx, "variant rejected", "url", candidate, "reason", outcome.Reason, "attempt", attempts)
			candidate = variants[cursor]
			cursor++
		default:
			return nil, fmt.Errorf("unexpected fetch outcome %d for %s", outcome.Kind, candidate)
		}
	}

	return nil, fmt.Errorf("%w: %d candidates rejected", domain.ErrNoValidImage, attempts)
}
