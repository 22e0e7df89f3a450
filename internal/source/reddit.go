package source

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cronkite-edu/cronkite/internal/model"
)

// maxRedditComments caps how many top-level comments are included.
const maxRedditComments = 5

// RedditExtractor extracts a post title, self-text, and top comments via the
// public JSON view of the post URL.
type RedditExtractor struct {
	fetcher *Fetcher
}

// NewRedditExtractor creates the forum-post extractor. The fetcher must carry
// a descriptive user agent: Reddit throttles generic agents on JSON views.
func NewRedditExtractor(fetcher *Fetcher) *RedditExtractor {
	return &RedditExtractor{fetcher: fetcher}
}

// redditListing mirrors one element of the two-listing payload Reddit
// returns for a post JSON view: [0] holds the post, [1] the comments.
type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title    string `json:"title"`
				Selftext string `json:"selftext"`
				Body     string `json:"body"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Extract implements the Extractor contract for forum-post URLs.
func (e *RedditExtractor) Extract(ctx context.Context, rawURL string) (string, error) {
	cleanURL := rawURL
	if i := strings.Index(cleanURL, "?"); i >= 0 {
		cleanURL = cleanURL[:i]
	}
	jsonURL := strings.TrimRight(cleanURL, "/") + ".json"

	body, err := e.fetcher.Get(ctx, jsonURL)
	if err != nil {
		return "", &model.ExtractionError{Source: "reddit", Reason: "could not fetch Reddit post", Err: err}
	}

	var listings []redditListing
	if err := json.Unmarshal(body, &listings); err != nil {
		return "", &model.ExtractionError{Source: "reddit", Reason: "could not fetch Reddit post", Err: err}
	}
	if len(listings) == 0 || len(listings[0].Data.Children) == 0 {
		return "", model.Extractionf("reddit", "post appears to be empty or deleted")
	}

	post := listings[0].Data.Children[0].Data
	parts := []string{post.Title}
	if post.Selftext != "" {
		parts = append(parts, post.Selftext)
	}

	if len(listings) > 1 {
		count := 0
		for _, child := range listings[1].Data.Children {
			if count >= maxRedditComments {
				break
			}
			count++
			body := child.Data.Body
			if body == "" || body == "[deleted]" || body == "[removed]" {
				continue
			}
			parts = append(parts, body)
		}
	}

	joined := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			joined = append(joined, p)
		}
	}
	text := strings.Join(joined, "\n\n")
	if len(text) < minRedditChars {
		return "", model.Extractionf("reddit", "post appears to be empty or deleted")
	}
	return text, nil
}
