package bluesky_test

import (
	"context"
	"reflect"
	"testing"

	"nasa-poster/internal/domain"
	"nasa-poster/test/fixtures"
)

func detect(t *testing.T, text string) []domain.Facet {
	t.Helper()
	pds := fixtures.NewPDS(t, fixtures.PDSConfig{
		Handles: map[string]string{"astro.bsky.social": "did:plc:astro"},
	})
	facets, err := login(t, pds).DetectFacets(context.Background(), text)
	if err != nil {
		t.Fatalf("DetectFacets: %v", err)
	}
	return facets
}

func TestDetectFacets_PostText_LinkCoversDetailsURL(t *testing.T) {
	// Arrange
	prefix := "Saturn's rings\n\n"
	link := "https://images.nasa.gov/details/PIA00001"

	// Act
	facets := detect(t, prefix+link)

	// Assert
	want := []domain.Facet{{ByteStart: len(prefix), ByteEnd: len(prefix) + len(link), Kind: domain.FacetLink, Value: link}}
	if !reflect.DeepEqual(facets, want) {
		t.Errorf("facets: got %+v, want %+v", facets, want)
	}
}

func TestDetectFacets_MultibyteTitle_UsesByteOffsets(t *testing.T) {
	prefix := "Étoile filante ✨\n\n"
	link := "https://images.nasa.gov/details/étoile"

	facets := detect(t, prefix+link)

	if len(facets) != 1 {
		t.Fatalf("facets: got %d, want 1", len(facets))
	}
	if facets[0].ByteStart != len(prefix) || facets[0].ByteEnd != len(prefix)+len(link) {
		t.Errorf("range: got [%d,%d), want [%d,%d)", facets[0].ByteStart, facets[0].ByteEnd, len(prefix), len(prefix)+len(link))
	}
}

func TestDetectFacets_TrailingPunctuation_Trimmed(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"period", "see https://nasa.gov/a.", "https://nasa.gov/a"},
		{"parenthesised", "(https://nasa.gov/a)", "https://nasa.gov/a"},
		{"balanced parens kept", "https://en.wikipedia.org/wiki/Apollo_(program)", "https://en.wikipedia.org/wiki/Apollo_(program)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facets := detect(t, tt.text)
			if len(facets) != 1 || facets[0].Value != tt.want {
				t.Fatalf("facets: got %+v, want one link %q", facets, tt.want)
			}
			if got := tt.text[facets[0].ByteStart:facets[0].ByteEnd]; got != tt.want {
				t.Errorf("range text: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectFacets_Hashtags(t *testing.T) {
	// Act
	facets := detect(t, "Launch #Artemis, #2024 #NASA")

	// Assert
	want := []domain.Facet{
		{ByteStart: 7, ByteEnd: 15, Kind: domain.FacetTag, Value: "Artemis"},
		{ByteStart: 23, ByteEnd: 28, Kind: domain.FacetTag, Value: "NASA"},
	}
	if !reflect.DeepEqual(facets, want) {
		t.Errorf("facets: got %+v, want %+v", facets, want)
	}
}

func TestDetectFacets_Mentions_ResolvedOnly(t *testing.T) {
	// Act
	facets := detect(t, "hi @astro.bsky.social and @ghost.bsky.social")

	// Assert
	want := []domain.Facet{{ByteStart: 3, ByteEnd: 21, Kind: domain.FacetMention, Value: "did:plc:astro"}}
	if !reflect.DeepEqual(facets, want) {
		t.Errorf("facets: got %+v, want %+v", facets, want)
	}
}

func TestDetectFacets_SortedByPosition(t *testing.T) {
	facets := detect(t, "@astro.bsky.social #Mars https://mars.nasa.gov")

	if len(facets) != 3 {
		t.Fatalf("facets: got %d, want 3", len(facets))
	}
	kinds := []domain.FacetKind{facets[0].Kind, facets[1].Kind, facets[2].Kind}
	want := []domain.FacetKind{domain.FacetMention, domain.FacetTag, domain.FacetLink}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("order: got %v, want %v", kinds, want)
	}
}

func TestDetectFacets_PlainText_None(t *testing.T) {
	if facets := detect(t, "A quiet night over the Pacific"); len(facets) != 0 {
		t.Errorf("facets: got %+v, want none", facets)
	}
}
