// Package search wraps the Tavily web-search service used to gather
// per-claim evidence. The searcher never fails: any upstream error degrades
// to an empty evidence list so one claim's search outage cannot abort an
// analysis in which the other claims succeeded.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/cronkite-edu/cronkite/internal/model"
)

const (
	// answerSource labels Tavily's synthesized answer, which has no single
	// originating domain.
	answerSource = "Tavily Web Search"

	// fallbackSource is used when a result URL cannot be parsed.
	fallbackSource = "Web"

	// maxSnippetChars truncates each evidence snippet.
	maxSnippetChars = 400

	// minResultChars drops near-empty result contents.
	minResultChars = 50
)

// Client calls the Tavily search API. Outbound calls are rate limited, and
// per-claim results are memoized for a short TTL so repeated claims within a
// session do not burn search quota. Analyses themselves are never cached.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	maxResults int
	limiter    *rate.Limiter
	cache      *gocache.Cache
}

// NewClient creates a search client from configuration.
func NewClient(cfg model.SearchConfig) *Client {
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 2
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		maxResults: maxResults,
		limiter:    rate.NewLimiter(rate.Limit(rps), 5),
		cache:      gocache.New(ttl, 2*ttl),
	}
}

// tavilyResponse mirrors the fields we consume from Tavily's search reply.
type tavilyResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// SearchClaim returns up to maxResults evidence items for a claim, the
// synthesized answer first. It never returns an error: failures are logged
// and yield an empty list.
func (c *Client) SearchClaim(ctx context.Context, claim string) []model.EvidenceItem {
	if cached, found := c.cache.Get(claim); found {
		return cached.([]model.EvidenceItem)
	}

	items, err := c.search(ctx, claim)
	if err != nil {
		log.Printf("search: claim %q: %v", claim, err)
		return nil
	}

	c.cache.SetDefault(claim, items)
	return items
}

func (c *Client) search(ctx context.Context, claim string) ([]model.EvidenceItem, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]any{
		"api_key":        c.apiKey,
		"query":          claim,
		"search_depth":   "basic",
		"max_results":    c.maxResults,
		"include_answer": true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var decoded tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}

	var items []model.EvidenceItem
	if decoded.Answer != "" {
		items = append(items, model.EvidenceItem{Text: decoded.Answer, Source: answerSource})
	}
	for _, r := range decoded.Results {
		if len(items) >= c.maxResults {
			break
		}
		if len(r.Content) <= minResultChars {
			continue
		}
		items = append(items, model.EvidenceItem{
			Text:   truncate(r.Content, maxSnippetChars),
			Source: domainOf(r.URL),
		})
	}
	if len(items) > c.maxResults {
		items = items[:c.maxResults]
	}
	return items, nil
}

// domainOf returns the host component of a result URL, or a generic label
// when the URL is absent or unparseable.
func domainOf(rawURL string) string {
	if rawURL == "" {
		return fallbackSource
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return fallbackSource
	}
	return parsed.Host
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
