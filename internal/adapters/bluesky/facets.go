package bluesky

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"nasa-poster/internal/domain"
	"nasa-poster/pkg/log"
)

// maxTagGraphemes is the longest hashtag the app view indexes.
const maxTagGraphemes = 64

var (
	linkPattern    = regexp.MustCompile(`(?:^|\s|\()(https?://\S+)`)
	tagPattern     = regexp.MustCompile(`(?:^|\s)([#＃])(\S+)`)
	mentionPattern = regexp.MustCompile(`(?:^|\s|\()@([a-zA-Z0-9.-]+\.[a-zA-Z0-9-]+)`)
)

// DetectFacets annotates links, hashtags and mentions with UTF-8 byte ranges.
// Mentions are resolved to DIDs through the PDS; handles that do not resolve
// are left as plain text.
func (s *Session) DetectFacets(ctx context.Context, text string) ([]domain.Facet, error) {
	facets := append(detectLinks(text), detectTags(text)...)

	for _, m := range detectMentions(text) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		did, err := s.resolveHandle(ctx, m.Value)
		if err != nil || did == "" {
			log.GlobalDebugCtx(ctx, "mention not resolved", "handle", m.Value, "error", err)
			continue
		}
		m.Value = did
		facets = append(facets, m)
	}

	sort.SliceStable(facets, func(i, j int) bool { return facets[i].ByteStart < facets[j].ByteStart })
	return facets, nil
}

func detectLinks(text string) []domain.Facet {
	var facets []domain.Facet
	for _, m := range linkPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[2], m[3]
		uri := trimLinkTail(text[start:end])
		if len(uri) <= len("https://") {
			continue
		}
		facets = append(facets, domain.Facet{
			ByteStart: start,
			ByteEnd:   start + len(uri),
			Kind:      domain.FacetLink,
			Value:     uri,
		})
	}
	return facets
}

// trimLinkTail drops trailing sentence punctuation and an unbalanced closing parenthesis.
func trimLinkTail(uri string) string {
	for {
		trimmed := strings.TrimRight(uri, ".,;:!?\"'")
		if strings.HasSuffix(trimmed, ")") && strings.Count(trimmed, "(") < strings.Count(trimmed, ")") {
			trimmed = trimmed[:len(trimmed)-1]
		}
		if trimmed == uri {
			return uri
		}
		uri = trimmed
	}
}

func detectTags(text string) []domain.Facet {
	var facets []domain.Facet
	for _, m := range tagPattern.FindAllStringSubmatchIndex(text, -1) {
		hashStart := m[2]
		tag := strings.TrimRightFunc(text[m[4]:m[5]], unicode.IsPunct)
		if tag == "" || isDigits(tag) || uniseg.GraphemeClusterCount(tag) > maxTagGraphemes {
			continue
		}
		facets = append(facets, domain.Facet{
			ByteStart: hashStart,
			ByteEnd:   m[4] + len(tag),
			Kind:      domain.FacetTag,
			Value:     tag,
		})
	}
	return facets
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// detectMentions returns unresolved mention facets whose Value is the handle.
func detectMentions(text string) []domain.Facet {
	var facets []domain.Facet
	for _, m := range mentionPattern.FindAllStringSubmatchIndex(text, -1) {
		handle := text[m[2]:m[3]]
		if !validHandle(handle) {
			continue
		}
		facets = append(facets, domain.Facet{
			ByteStart: m[2] - 1, // include '@'
			ByteEnd:   m[3],
			Kind:      domain.FacetMention,
			Value:     strings.ToLower(handle),
		})
	}
	return facets
}

// validHandle checks the domain-name shape of a handle.
func validHandle(handle string) bool {
	if len(handle) > 253 {
		return false
	}
	labels := strings.Split(handle, ".")
	for _, label := range labels {
		if label == "" || len(label) > 63 || strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
	}
	last := labels[len(labels)-1]
	return last != "" && unicode.IsLetter(rune(last[0]))
}
