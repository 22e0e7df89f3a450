package source

import (
	"bytes"
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/cronkite-edu/cronkite/internal/model"
)

// strippedTags are removed before the paragraph fallback pass: they carry
// navigation and boilerplate, not article text.
const strippedTags = "script,style,nav,header,footer,aside,form"

// ArticleExtractor handles every URL that matched no platform-specific
// pattern. It fetches the raw HTML once and applies two extraction passes:
// a structured article-content parser, then a tag-based paragraph heuristic.
type ArticleExtractor struct {
	fetcher *Fetcher
	robots  *RobotsChecker // nil when robots.txt checking is disabled
}

// NewArticleExtractor creates the generic article extractor.
func NewArticleExtractor(fetcher *Fetcher, robots *RobotsChecker) *ArticleExtractor {
	return &ArticleExtractor{fetcher: fetcher, robots: robots}
}

// Extract implements the Extractor contract for generic article URLs.
func (e *ArticleExtractor) Extract(ctx context.Context, rawURL string) (string, error) {
	if e.robots != nil && !e.robots.CanFetch(ctx, rawURL) {
		return "", model.Extractionf("article", "fetch disallowed by robots.txt")
	}

	body, err := e.fetcher.Get(ctx, rawURL)
	if err != nil {
		return "", &model.ExtractionError{Source: "article", Reason: "could not fetch URL", Err: err}
	}

	// Pass 1: structured article parser.
	if text := e.readabilityPass(body, rawURL); len(text) >= minArticleChars {
		return text, nil
	}

	// Pass 2: paragraph heuristic.
	if text := e.paragraphPass(body); len(text) >= minArticleChars {
		return text, nil
	}

	return "", model.Extractionf("article",
		"could not extract text from URL; try pasting the text directly")
}

// readabilityPass runs the go-readability content parser over the HTML.
// Returns empty text on any parse failure so the caller falls through.
func (e *ArticleExtractor) readabilityPass(body []byte, rawURL string) string {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		log.Printf("article: readability pass failed for %s: %v", rawURL, err)
		return ""
	}
	return strings.TrimSpace(article.TextContent)
}

// paragraphPass strips boilerplate elements and joins paragraph texts,
// preferring paragraphs inside an <article> element when one exists.
func (e *ArticleExtractor) paragraphPass(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	doc.Find(strippedTags).Remove()

	paragraphs := doc.Find("article p")
	if paragraphs.Length() == 0 {
		paragraphs = doc.Find("p")
	}

	var lines []string
	paragraphs.Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len(text) > minParagraphChars {
			lines = append(lines, text)
		}
	})

	return strings.Join(lines, "\n")
}
