package usecases_test

import (
	"testing"

	"nasa-poster/internal/domain"
	"nasa-poster/internal/usecases"
)

func TestSelectVariant(t *testing.T) {
	markers := usecases.DefaultVariantMarkers()
	tests := []struct {
		name     string
		purpose  domain.Purpose
		variants domain.VariantCollection
		want     string
	}{
		{"full image prefers original", domain.PurposeFullImage, domain.VariantCollection{"a~large.jpg", "a~orig.tif", "a~small.jpg"}, "a~orig.tif"},
		{"full image first original wins", domain.PurposeFullImage, domain.VariantCollection{"x.png", "a~orig.png", "b~orig.jpg"}, "a~orig.png"},
		{"full image falls back to first", domain.PurposeFullImage, domain.VariantCollection{"a~large.jpg", "a~small.jpg"}, "a~large.jpg"},
		{"thumbnail prefers thumb marker", domain.PurposeThumbnail, domain.VariantCollection{"a.png", "b~thumb.jpg", "c.mov"}, "b~thumb.jpg"},
		{"thumbnail falls back to jpg suffix", domain.PurposeThumbnail, domain.VariantCollection{"a~orig.mp4", "a~small.jpg", "a~large.jpg"}, "a~small.jpg"},
		{"thumbnail falls back to first", domain.PurposeThumbnail, domain.VariantCollection{"a~orig.mp4", "a.srt"}, "a~orig.mp4"},
		{"thumbnail ignores jpg mid-path", domain.PurposeThumbnail, domain.VariantCollection{"a.jpg.mov", "b.png"}, "a.jpg.mov"},
		{"single element", domain.PurposeThumbnail, domain.VariantCollection{"only.mov"}, "only.mov"},
		{"empty", domain.PurposeFullImage, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := usecases.SelectVariant(tt.purpose, tt.variants, markers); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectVariant_AlwaysReturnsAMember(t *testing.T) {
	collections := []domain.VariantCollection{
		{"a"},
		{"a~orig", "b"},
		{"x.mov", "y.mp4", "z.srt"},
		{"p~thumb.jpg", "q~orig.png"},
	}
	for _, c := range collections {
		for _, purpose := range []domain.Purpose{domain.PurposeFullImage, domain.PurposeThumbnail} {
			got := usecases.SelectVariant(purpose, c, usecases.DefaultVariantMarkers())
			found := false
			for _, v := range c {
				found = found || v == got
			}
			if !found {
				t.Errorf("SelectVariant(%v, %v) = %q, not a member", purpose, c, got)
			}
		}
	}
}
