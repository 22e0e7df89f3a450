package source

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cronkite-edu/cronkite/internal/model"
)

// metaTagPriority is the order in which meta tags are consulted for a
// caption. og:description usually carries the post text.
var metaTagPriority = []string{"og:description", "og:title", "description"}

// InstagramExtractor extracts a photo-post caption from Open Graph meta tags.
// Best effort: Instagram serves meta tags to anonymous requests for public
// posts but login-gates everything else.
type InstagramExtractor struct {
	fetcher *Fetcher
}

// NewInstagramExtractor creates the photo-post extractor.
func NewInstagramExtractor(fetcher *Fetcher) *InstagramExtractor {
	return &InstagramExtractor{fetcher: fetcher}
}

// Extract implements the Extractor contract for photo-post URLs.
func (e *InstagramExtractor) Extract(ctx context.Context, rawURL string) (string, error) {
	body, err := e.fetcher.Get(ctx, rawURL)
	if err != nil {
		return "", &model.ExtractionError{Source: "instagram", Reason: "could not fetch Instagram post", Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", &model.ExtractionError{Source: "instagram", Reason: "could not parse page", Err: err}
	}

	for _, prop := range metaTagPriority {
		sel := doc.Find(fmt.Sprintf(`meta[property=%q]`, prop))
		if sel.Length() == 0 {
			sel = doc.Find(fmt.Sprintf(`meta[name=%q]`, prop))
		}
		if content, ok := sel.First().Attr("content"); ok && strings.TrimSpace(content) != "" {
			return content, nil
		}
	}

	return "", model.Extractionf("instagram",
		"could not extract Instagram content; post may be private or login-gated")
}
