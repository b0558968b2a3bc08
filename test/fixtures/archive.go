package fixtures

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// File is one rendition served by the fake archive.
type File struct {
	Name        string
	ContentType string // empty sends no Content-Type header
	Body        []byte
	Chunked     bool // stream without Content-Length
	Status      int  // zero means 200
}

// ArchiveAsset is an asset listed in the fake feed together with its renditions.
type ArchiveAsset struct {
	NasaID      string
	MediaType   string
	Title       string
	Description string
	NoData      bool

	// Files are listed in the variant collection in this order.
	Files []File

	// WrappedCollection serves {"collection":{"items":[...]}} instead of a plain array.
	WrappedCollection bool
}

// Archive fakes the image library: a feed listing, one variant collection per
// asset and the rendition files themselves.
type Archive struct {
	*Server
	assets map[string]ArchiveAsset
	order  []string
}

// NewArchive starts a fake archive serving assets.
func NewArchive(t testing.TB, assets ...ArchiveAsset) *Archive {
	t.Helper()

	a := &Archive{assets: make(map[string]ArchiveAsset, len(assets))}
	for _, asset := range assets {
		a.assets[asset.NasaID] = asset
		a.order = append(a.order, asset.NasaID)
	}

	a.Server = NewServer(t, func(app *fiber.App) {
		app.Get("/recent.json", a.handleFeed)
		app.Get("/:id/collection.json", a.handleCollection)
		app.Get("/:id/:file", a.handleFile)
	})
	return a
}

// FeedURL is the listing endpoint.
func (a *Archive) FeedURL() string {
	return a.URL + "/recent.json"
}

// CollectionURL is the variant collection endpoint of an asset.
func (a *Archive) CollectionURL(nasaID string) string {
	return a.URL + a.CollectionPath(nasaID)
}

// CollectionPath is the request path of an asset's variant collection.
func (a *Archive) CollectionPath(nasaID string) string {
	return "/" + nasaID + "/collection.json"
}

// FileURL is the absolute URL of a rendition.
func (a *Archive) FileURL(nasaID, name string) string {
	return a.URL + a.FilePath(nasaID, name)
}

// FilePath is the request path of a rendition.
func (a *Archive) FilePath(nasaID, name string) string {
	return "/" + nasaID + "/" + name
}

// FileHits returns the request paths of renditions in arrival order.
func (a *Archive) FileHits() []string {
	var hits []string
	for _, p := range a.Paths() {
		if p == "/recent.json" || strings.HasSuffix(p, "/collection.json") {
			continue
		}
		hits = append(hits, p)
	}
	return hits
}

func (a *Archive) handleFeed(c *fiber.Ctx) error {
	entries := make([]FeedEntry, 0, len(a.order))
	for _, id := range a.order {
		asset := a.assets[id]
		entries = append(entries, FeedEntry{
			Href:        a.CollectionURL(id),
			NasaID:      asset.NasaID,
			MediaType:   asset.MediaType,
			Title:       asset.Title,
			Description: asset.Description,
			NoData:      asset.NoData,
		})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(GenerateFeed(entries...))
}

func (a *Archive) handleCollection(c *fiber.Ctx) error {
	asset, ok := a.assets[c.Params("id")]
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	urls := make([]string, 0, len(asset.Files))
	for _, f := range asset.Files {
		urls = append(urls, a.FileURL(asset.NasaID, f.Name))
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if asset.WrappedCollection {
		return c.Send(GenerateVariantCollection(urls...))
	}
	return c.Send(GenerateVariantArray(urls...))
}

func (a *Archive) handleFile(c *fiber.Ctx) error {
	asset, ok := a.assets[c.Params("id")]
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	for _, f := range asset.Files {
		if f.Name == c.Params("file") {
			return ServeFile(c, f)
		}
	}
	return c.SendStatus(fiber.StatusNotFound)
}

// ServeFile writes f honoring its content type, status and chunking.
func ServeFile(c *fiber.Ctx, f File) error {
	if f.Status != 0 {
		c.Status(f.Status)
	}
	if f.ContentType == "" {
		c.Response().Header.SetNoDefaultContentType(true)
	} else {
		c.Set(fiber.HeaderContentType, f.ContentType)
	}
	if f.Chunked {
		c.Context().SetBodyStream(bytes.NewReader(f.Body), -1)
		return nil
	}
	return c.Send(f.Body)
}
