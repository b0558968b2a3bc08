package bluesky

import (
	"errors"

	"github.com/bluesky-social/indigo/xrpc"

	"nasa-poster/internal/domain"
)

const (
	// nsidUploadBlob is called directly so the blob keeps its declared encoding.
	nsidUploadBlob = "com.atproto.repo.uploadBlob"

	collectionFeedPost = "app.bsky.feed.post"

	// createdAtLayout is the millisecond ISO-8601 form the app view expects.
	createdAtLayout = "2006-01-02T15:04:05.000Z"
)

// transportError maps an indigo xrpc failure onto the domain error. Status
// failures carry the XRPC error name and message as Detail; anything else
// (network, decoding) is kept as the cause.
func transportError(op, host string, err error) error {
	te := &domain.TransportError{Op: op, URL: host}

	var xe *xrpc.Error
	if !errors.As(err, &xe) {
		te.Err = err
		return te
	}
	te.StatusCode = xe.StatusCode

	var body *xrpc.XRPCError
	switch {
	case errors.As(xe.Wrapped, &body) && body.ErrStr != "":
		te.Detail = body.ErrStr
		if body.Message != "" {
			te.Detail += ": " + body.Message
		}
	case xe.Wrapped != nil:
		te.Err = xe.Wrapped
	}
	return te
}
