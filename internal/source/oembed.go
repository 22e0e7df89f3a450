package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cronkite-edu/cronkite/internal/model"
)

// TwitterExtractor extracts tweet text via the public oEmbed endpoint.
// No authentication is required; the endpoint returns an embeddable HTML
// fragment whose first paragraph carries the tweet body.
type TwitterExtractor struct {
	fetcher    *Fetcher
	oembedBase string
}

// NewTwitterExtractor creates the microblog extractor.
func NewTwitterExtractor(fetcher *Fetcher) *TwitterExtractor {
	return &TwitterExtractor{
		fetcher:    fetcher,
		oembedBase: "https://publish.twitter.com/oembed",
	}
}

// Extract implements the Extractor contract for tweet URLs.
func (e *TwitterExtractor) Extract(ctx context.Context, rawURL string) (string, error) {
	endpoint := fmt.Sprintf("%s?url=%s&omit_script=true", e.oembedBase, url.QueryEscape(rawURL))
	body, err := e.fetcher.Get(ctx, endpoint)
	if err != nil {
		return "", &model.ExtractionError{Source: "twitter", Reason: "could not fetch tweet", Err: err}
	}

	var payload struct {
		HTML       string `json:"html"`
		AuthorName string `json:"author_name"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &model.ExtractionError{Source: "twitter", Reason: "could not fetch tweet", Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(payload.HTML))
	if err != nil {
		return "", &model.ExtractionError{Source: "twitter", Reason: "could not parse embed HTML", Err: err}
	}

	tweetText := strings.TrimSpace(doc.Find("p").First().Text())
	if tweetText == "" {
		return "", model.Extractionf("twitter", "could not extract tweet text")
	}
	if payload.AuthorName != "" {
		return payload.AuthorName + ": " + tweetText, nil
	}
	return tweetText, nil
}

// TikTokExtractor extracts a video caption via the public oEmbed endpoint.
type TikTokExtractor struct {
	fetcher    *Fetcher
	oembedBase string
}

// NewTikTokExtractor creates the short-video extractor.
func NewTikTokExtractor(fetcher *Fetcher) *TikTokExtractor {
	return &TikTokExtractor{
		fetcher:    fetcher,
		oembedBase: "https://www.tiktok.com/oembed",
	}
}

// Extract implements the Extractor contract for TikTok URLs.
func (e *TikTokExtractor) Extract(ctx context.Context, rawURL string) (string, error) {
	endpoint := fmt.Sprintf("%s?url=%s", e.oembedBase, url.QueryEscape(rawURL))
	body, err := e.fetcher.Get(ctx, endpoint)
	if err != nil {
		return "", &model.ExtractionError{Source: "tiktok", Reason: "could not fetch TikTok data", Err: err}
	}

	var payload struct {
		Title      string `json:"title"`
		AuthorName string `json:"author_name"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &model.ExtractionError{Source: "tiktok", Reason: "could not fetch TikTok data", Err: err}
	}

	if payload.Title == "" {
		return "", model.Extractionf("tiktok", "could not extract TikTok description")
	}
	if payload.AuthorName != "" {
		return payload.AuthorName + ": " + payload.Title, nil
	}
	return payload.Title, nil
}
