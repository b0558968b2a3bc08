package fixtures

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

const (
	PDSIdentifier = "nasa-bot.test"
	PDSPassword   = "app-password"
	PDSDID        = "did:plc:nasabot000000000000000"

	tokenSecret = "fixture-secret"
)

// PDSConfig tunes the fake personal data server.
type PDSConfig struct {
	Identifier string
	Password   string
	DID        string

	// AccessJWT is returned by createSession; defaults to a token valid for an hour.
	AccessJWT string

	// Handles maps resolvable handles to DIDs.
	Handles map[string]string

	// UploadStatus and RecordStatus fail the respective endpoints when non-zero.
	UploadStatus int
	RecordStatus int
}

// Upload is a blob received by the fake PDS.
type Upload struct {
	ContentType string
	Body        []byte
}

// PDS fakes the XRPC endpoints the poster uses.
type PDS struct {
	*Server
	cfg PDSConfig

	mu      sync.Mutex
	uploads []Upload
	records []map[string]any
}

// NewPDS starts a fake PDS. Zero config fields get the PDS* defaults.
func NewPDS(t testing.TB, cfg PDSConfig) *PDS {
	t.Helper()

	if cfg.Identifier == "" {
		cfg.Identifier = PDSIdentifier
	}
	if cfg.Password == "" {
		cfg.Password = PDSPassword
	}
	if cfg.DID == "" {
		cfg.DID = PDSDID
	}
	if cfg.AccessJWT == "" {
		cfg.AccessJWT = GenerateAccessToken(cfg.DID, time.Now().Add(time.Hour))
	}

	p := &PDS{cfg: cfg}
	p.Server = NewServer(t, func(app *fiber.App) {
		app.Post("/xrpc/com.atproto.server.createSession", p.handleCreateSession)
		app.Post("/xrpc/com.atproto.repo.uploadBlob", p.requireAuth, p.handleUploadBlob)
		app.Post("/xrpc/com.atproto.repo.createRecord", p.requireAuth, p.handleCreateRecord)
		app.Get("/xrpc/com.atproto.identity.resolveHandle", p.handleResolveHandle)
	})
	return p
}

// GenerateAccessToken mints an HS256 access token for did expiring at exp.
func GenerateAccessToken(did string, exp time.Time) string {
	claims := jwt.RegisteredClaims{
		Subject:   did,
		Audience:  jwt.ClaimStrings{"did:web:pds.test"},
		IssuedAt:  jwt.NewNumericDate(exp.Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(tokenSecret))
	return token
}

// BlobCID returns the CIDv1 (raw, sha2-256) a PDS assigns to data.
func BlobCID(data []byte) string {
	c, err := cid.Prefix{Version: 1, Codec: cid.Raw, MhType: multihash.SHA2_256, MhLength: -1}.Sum(data)
	if err != nil {
		panic(err)
	}
	return c.String()
}

// DID returns the account DID the fake PDS authenticates.
func (p *PDS) DID() string {
	return p.cfg.DID
}

// Uploads returns every blob received.
func (p *PDS) Uploads() []Upload {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Upload(nil), p.uploads...)
}

// Records returns every createRecord body received.
func (p *PDS) Records() []map[string]any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]map[string]any(nil), p.records...)
}

func xrpcError(c *fiber.Ctx, status int, name, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": name, "message": message})
}

func (p *PDS) requireAuth(c *fiber.Ctx) error {
	if c.Get(fiber.HeaderAuthorization) != "Bearer "+p.cfg.AccessJWT {
		return xrpcError(c, fiber.StatusUnauthorized, "AuthenticationRequired", "Invalid or missing token")
	}
	return c.Next()
}

func (p *PDS) handleCreateSession(c *fiber.Ctx) error {
	var body struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return xrpcError(c, fiber.StatusBadRequest, "InvalidRequest", err.Error())
	}
	if body.Identifier != p.cfg.Identifier || body.Password != p.cfg.Password {
		return xrpcError(c, fiber.StatusUnauthorized, "AuthenticationRequired", "Invalid identifier or password")
	}
	return c.JSON(fiber.Map{
		"accessJwt":  p.cfg.AccessJWT,
		"refreshJwt": "refresh-" + p.cfg.DID,
		"handle":     p.cfg.Identifier,
		"did":        p.cfg.DID,
	})
}

func (p *PDS) handleUploadBlob(c *fiber.Ctx) error {
	if p.cfg.UploadStatus != 0 {
		return xrpcError(c, p.cfg.UploadStatus, "InternalServerError", "blob store unavailable")
	}

	up := Upload{ContentType: c.Get(fiber.HeaderContentType), Body: bytes.Clone(c.Body())}
	p.mu.Lock()
	p.uploads = append(p.uploads, up)
	p.mu.Unlock()

	return c.JSON(fiber.Map{
		"blob": fiber.Map{
			"$type":    "blob",
			"ref":      fiber.Map{"$link": BlobCID(up.Body)},
			"mimeType": up.ContentType,
			"size":     len(up.Body),
		},
	})
}

func (p *PDS) handleCreateRecord(c *fiber.Ctx) error {
	if p.cfg.RecordStatus != 0 {
		return xrpcError(c, p.cfg.RecordStatus, "InvalidRequest", "record rejected")
	}

	var body map[string]any
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return xrpcError(c, fiber.StatusBadRequest, "InvalidRequest", err.Error())
	}
	p.mu.Lock()
	p.records = append(p.records, body)
	n := len(p.records)
	p.mu.Unlock()

	return c.JSON(fiber.Map{
		"uri": fmt.Sprintf("at://%s/app.bsky.feed.post/3kpost%d", p.cfg.DID, n),
		"cid": fmt.Sprintf("bafyreipost%d", n),
	})
}

func (p *PDS) handleResolveHandle(c *fiber.Ctx) error {
	did, ok := p.cfg.Handles[c.Query("handle")]
	if !ok {
		return xrpcError(c, fiber.StatusBadRequest, "InvalidRequest", "Unable to resolve handle")
	}
	return c.JSON(fiber.Map{"did": did})
}
