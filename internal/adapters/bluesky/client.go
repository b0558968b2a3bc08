// Package bluesky talks to an AT Protocol PDS through indigo's XRPC client:
// session creation, blob upload, rich-text facet detection and post creation.
package bluesky

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bluesky-social/indigo/api/atproto"
	lexutil "github.com/bluesky-social/indigo/lex/util"
	"github.com/bluesky-social/indigo/xrpc"

	"nasa-poster/internal/adapters/httpclient"
	"nasa-poster/internal/domain"
	"nasa-poster/pkg/log"
)

// DefaultService is the PDS entryway used when none is configured.
const DefaultService = "https://bsky.social"

// Client issues XRPC calls against one service.
type Client struct {
	host      string
	http      *http.Client
	userAgent string
}

// NewClient creates a client for service, reusing the shared HTTP client settings.
func NewClient(service string, hc *httpclient.Client) *Client {
	if service == "" {
		service = DefaultService
	}
	return &Client{
		host:      strings.TrimRight(service, "/"),
		http:      hc.HTTPClient(),
		userAgent: hc.UserAgent(),
	}
}

// xrpcClient returns an indigo client for the service, authenticated when auth is set.
func (cl *Client) xrpcClient(auth *xrpc.AuthInfo) *xrpc.Client {
	ua := cl.userAgent
	return &xrpc.Client{
		Client:    cl.http,
		Host:      cl.host,
		UserAgent: &ua,
		Auth:      auth,
	}
}

// Login creates an authenticated session. It is performed once per run.
func (cl *Client) Login(ctx context.Context, identifier, password string) (*Session, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	out, err := atproto.ServerCreateSession(ctx, cl.xrpcClient(nil), &atproto.ServerCreateSession_Input{
		Identifier: identifier,
		Password:   password,
	})
	if err != nil {
		return nil, fmt.Errorf("login as %s: %w", identifier, transportError("com.atproto.server.createSession", cl.host, err))
	}

	expiresAt, err := accessExpiry(out.AccessJwt)
	if err != nil {
		log.GlobalWarnCtx(ctx, "access token expiry unreadable", "error", err)
	}

	log.GlobalInfoCtx(ctx, "session created", "did", out.Did, "handle", out.Handle)
	return &Session{
		xrpc: cl.xrpcClient(&xrpc.AuthInfo{
			AccessJwt:  out.AccessJwt,
			RefreshJwt: out.RefreshJwt,
			Handle:     out.Handle,
			Did:        out.Did,
		}),
		DID:       out.Did,
		Handle:    out.Handle,
		expiresAt: expiresAt,
		now:       time.Now,
	}, nil
}

// UploadBlob stores data with the given encoding as its Content-Type.
func (s *Session) UploadBlob(ctx context.Context, data []byte, encoding string) (domain.BlobRef, error) {
	if err := s.authorize(); err != nil {
		return domain.BlobRef{}, err
	}

	// atproto.RepoUploadBlob always sends */*; the PDS should see the real type.
	var out atproto.RepoUploadBlob_Output
	if err := s.xrpc.Do(ctx, xrpc.Procedure, encoding, nsidUploadBlob, nil, bytes.NewReader(data), &out); err != nil {
		return domain.BlobRef{}, transportError(nsidUploadBlob, s.xrpc.Host, err)
	}
	if out.Blob == nil {
		return domain.BlobRef{}, &domain.TransportError{Op: nsidUploadBlob, URL: s.xrpc.Host, Detail: "response has no blob"}
	}

	mimeType := out.Blob.MimeType
	if mimeType == "" {
		mimeType = encoding
	}
	ref := domain.BlobRef{
		CID:      out.Blob.Ref.String(),
		MimeType: mimeType,
		Size:     out.Blob.Size,
	}

	log.GlobalDebugCtx(ctx, "blob uploaded", "cid", ref.CID, "size", ref.Size, "mime_type", ref.MimeType)
	return ref, nil
}

// Publish creates an app.bsky.feed.post record in the session's repo.
func (s *Session) Publish(ctx context.Context, post *domain.Post) (*domain.PublishedPost, error) {
	if err := s.authorize(); err != nil {
		return nil, err
	}

	record, err := newPostRecord(post)
	if err != nil {
		return nil, err
	}

	out, err := atproto.RepoCreateRecord(ctx, s.xrpc, &atproto.RepoCreateRecord_Input{
		Repo:       s.DID,
		Collection: collectionFeedPost,
		Record:     &lexutil.LexiconTypeDecoder{Val: record},
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", transportError("com.atproto.repo.createRecord", s.xrpc.Host, err))
	}
	return &domain.PublishedPost{URI: out.Uri, CID: out.Cid}, nil
}

// resolveHandle maps a handle to its DID.
func (s *Session) resolveHandle(ctx context.Context, handle string) (string, error) {
	if err := s.authorize(); err != nil {
		return "", err
	}

	out, err := atproto.IdentityResolveHandle(ctx, s.xrpc, handle)
	if err != nil {
		return "", transportError("com.atproto.identity.resolveHandle", s.xrpc.Host, err)
	}
	return out.Did, nil
}
