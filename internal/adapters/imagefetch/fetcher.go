// Package imagefetch downloads candidate renditions, applies the content-type
// and size policy and uploads accepted images to the blob store.
package imagefetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"strings"

	"nasa-poster/internal/adapters/httpclient"
	"nasa-poster/internal/domain"
	"nasa-poster/internal/usecases"
	"nasa-poster/pkg/log"
)

const (
	// DefaultMaxBytes is the posting service's image size ceiling. Equal is allowed.
	DefaultMaxBytes int64 = 1_000_000

	// DefaultTypePrefix is the media type prefix an acceptable candidate must have.
	DefaultTypePrefix = "image"
)

// BlobUploader stores image bytes and returns a reference usable in an embed.
type BlobUploader interface {
	UploadBlob(ctx context.Context, data []byte, encoding string) (domain.BlobRef, error)
}

// Fetcher implements usecases.ImageFetcher.
type Fetcher struct {
	http       *httpclient.Client
	uploader   BlobUploader
	maxBytes   int64
	typePrefix string
}

// NewFetcher creates a Fetcher. Non-positive maxBytes and an empty typePrefix
// fall back to the defaults.
func NewFetcher(http *httpclient.Client, uploader BlobUploader, maxBytes int64, typePrefix string) *Fetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if typePrefix == "" {
		typePrefix = DefaultTypePrefix
	}
	return &Fetcher{
		http:       http,
		uploader:   uploader,
		maxBytes:   maxBytes,
		typePrefix: strings.ToLower(typePrefix),
	}
}

// FetchAndValidate retrieves url and classifies it.
//
// Rejected: the Content-Type does not start with the type prefix (a missing
// header included), or the size exceeds the ceiling. The declared
// Content-Length is checked first; without one the body is read up to one
// byte past the ceiling and measured. Rejected candidates are never uploaded.
//
// TransportFailure: the GET failed, returned a non-2xx status, the body could
// not be read or the upload failed.
func (f *Fetcher) FetchAndValidate(ctx context.Context, url string) usecases.FetchOutcome {
	resp, err := f.http.Get(ctx, url)
	if err != nil {
		return usecases.TransportFailure(fmt.Errorf("fetch image: %w", err))
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(contentType), f.typePrefix) {
		return usecases.Rejected(fmt.Sprintf("content type %q does not start with %q", contentType, f.typePrefix))
	}
	if resp.ContentLength > f.maxBytes {
		return usecases.Rejected(fmt.Sprintf("declared size %d exceeds %d bytes", resp.ContentLength, f.maxBytes))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return usecases.TransportFailure(&domain.TransportError{Op: "read image", URL: url, Err: err})
	}
	if int64(len(data)) > f.maxBytes {
		return usecases.Rejected(fmt.Sprintf("body exceeds %d bytes", f.maxBytes))
	}

	encoding := mediaType(contentType)
	width, height, format := decodeDimensions(data)
	log.GlobalDebugCtx(ctx, "image validated",
		"url", url,
		"encoding", encoding,
		"size", len(data),
		"format", format,
		"width", width,
		"height", height,
	)

	blob, err := f.uploader.UploadBlob(ctx, data, encoding)
	if err != nil {
		return usecases.TransportFailure(fmt.Errorf("upload image: %w", err))
	}

	return usecases.Accepted(&domain.ValidatedImage{
		Blob:        blob,
		SourceURL:   url,
		ContentType: encoding,
		Size:        int64(len(data)),
		Width:       width,
		Height:      height,
	})
}

// mediaType strips parameters from a Content-Type value, keeping the raw
// value when it does not parse.
func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.TrimSpace(contentType)
	}
	return mt
}
