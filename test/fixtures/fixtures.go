// Package fixtures provides generated documents, images and fake HTTP
// services for testing the adapters and the publish run end to end.
package fixtures

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
)

// FeedEntry is one item of a generated feed listing.
type FeedEntry struct {
	Href        string
	NasaID      string
	MediaType   string
	Title       string
	Description string

	// NoData omits the data array entirely.
	NoData bool
}

// GenerateFeed creates a feed listing document in the archive's collection+json shape.
func GenerateFeed(entries ...FeedEntry) []byte {
	items := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		item := map[string]any{"href": e.Href}
		if !e.NoData {
			item["data"] = []map[string]any{{
				"nasa_id":     e.NasaID,
				"media_type":  e.MediaType,
				"title":       e.Title,
				"description": e.Description,
				"center":      "JPL",
			}}
		}
		items = append(items, item)
	}

	doc := map[string]any{
		"collection": map[string]any{
			"version": "1.0",
			"href":    "https://images-api.nasa.gov/recent",
			"items":   items,
		},
	}
	b, _ := json.Marshal(doc)
	return b
}

// GenerateVariantArray creates a variant collection in the plain-array shape.
func GenerateVariantArray(urls ...string) []byte {
	b, _ := json.Marshal(urls)
	return b
}

// GenerateVariantCollection creates a variant collection in the wrapped
// {"collection":{"items":[{"href":...}]}} shape.
func GenerateVariantCollection(urls ...string) []byte {
	items := make([]map[string]string, 0, len(urls))
	for _, u := range urls {
		items = append(items, map[string]string{"href": u})
	}
	b, _ := json.Marshal(map[string]any{"collection": map[string]any{"items": items}})
	return b
}

// GeneratePNG creates a decodable PNG of the given dimensions.
func GeneratePNG(width, height int) []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, solid(width, height))
	return buf.Bytes()
}

// GenerateJPEG creates a decodable JPEG of the given dimensions.
func GenerateJPEG(width, height int) []byte {
	var buf bytes.Buffer
	_ = jpeg.Encode(&buf, solid(width, height), &jpeg.Options{Quality: 80})
	return buf.Bytes()
}

// GeneratePaddedPNG creates a PNG of the given dimensions padded with
// trailing zero bytes to exactly size bytes. Headers stay decodable.
func GeneratePaddedPNG(width, height, size int) []byte {
	b := GeneratePNG(width, height)
	if len(b) >= size {
		return b[:size]
	}
	return append(b, make([]byte, size-len(b))...)
}

func solid(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	c := color.RGBA{R: 11, G: 61, B: 145, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}
