package bluesky

import (
	"fmt"
	"time"

	"github.com/bluesky-social/indigo/xrpc"
	"github.com/golang-jwt/jwt/v5"

	"nasa-poster/internal/domain"
)

// Session is the authenticated context of one run. It is passed explicitly to
// the image fetcher (blob uploads), the composer (facet detection) and the
// publisher; nothing refreshes it.
type Session struct {
	xrpc *xrpc.Client

	DID    string
	Handle string

	expiresAt time.Time // zero when the token carries no readable exp
	now       func() time.Time
}

// ExpiresAt reports when the access token stops being accepted.
func (s *Session) ExpiresAt() time.Time {
	return s.expiresAt
}

// authorize fails fast once the access token has expired.
func (s *Session) authorize() error {
	if !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt) {
		return fmt.Errorf("%w: access token expired at %s", domain.ErrSessionExpired, s.expiresAt.UTC().Format(time.RFC3339))
	}
	return nil
}

// accessExpiry reads the exp claim without verifying the signature; the PDS
// remains the authority on validity.
func accessExpiry(token string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}
