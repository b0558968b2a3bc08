package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransport is returned when a network retrieval, upload or submission fails.
	// It is fatal for the run and never retried.
	ErrTransport = errors.New("transport failure")

	// ErrRejectedImage is returned when a candidate fails the content-type or size policy.
	// The fallback resolver treats it as "try the next candidate".
	ErrRejectedImage = errors.New("image rejected")

	// ErrNoValidImage is returned when every candidate of a collection was rejected.
	ErrNoValidImage = errors.New("no valid image in variant collection")

	// ErrMissingMetadata is returned when nasa_id, title or description is absent.
	ErrMissingMetadata = errors.New("missing asset metadata")

	// ErrUnknownMediaKind is returned for media kinds other than image and video.
	ErrUnknownMediaKind = errors.New("unknown media kind")

	// ErrEmptyFeed is returned when the feed listing has no entries.
	ErrEmptyFeed = errors.New("feed listing is empty")

	// ErrNoEligibleAsset is returned when every entry has the excluded media kind.
	ErrNoEligibleAsset = errors.New("no eligible asset in feed listing")

	// ErrMissingCredentials is returned when the posting credentials are not configured.
	ErrMissingCredentials = errors.New("missing posting credentials")

	// ErrSessionExpired is returned when the authenticated session can no longer be used.
	ErrSessionExpired = errors.New("session expired")
)

// TransportError describes a failed network operation.
type TransportError struct {
	Op         string // e.g. "fetch feed", "upload blob"
	URL        string
	StatusCode int // 0 when no response was received
	Detail     string
	Err        error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.URL != "" {
		b.WriteString(" ")
		b.WriteString(e.URL)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": HTTP %d", e.StatusCode)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the underlying cause.
func (e *TransportError) Unwrap() error { return e.Err }

// Is makes every TransportError match ErrTransport.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// MetadataError lists the asset fields that were absent.
type MetadataError struct {
	AssetID string
	Fields  []string
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("asset %q: missing %s", e.AssetID, strings.Join(e.Fields, ", "))
}

// Is makes every MetadataError match ErrMissingMetadata.
func (e *MetadataError) Is(target error) bool { return target == ErrMissingMetadata }

// MediaKindError carries the unexpected media kind.
type MediaKindError struct {
	Kind MediaKind
}

func (e *MediaKindError) Error() string {
	return fmt.Sprintf("unknown media kind %q", string(e.Kind))
}

// Is makes every MediaKindError match ErrUnknownMediaKind.
func (e *MediaKindError) Is(target error) bool { return target == ErrUnknownMediaKind }
