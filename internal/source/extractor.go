package source

import (
	"context"

	"github.com/cronkite-edu/cronkite/internal/model"
)

// Minimum text lengths accepted at each stage. Anything shorter is treated
// as "no usable text" rather than passed on to the analysis stage.
const (
	minTranscriptChars = 50
	minRedditChars     = 20
	minParagraphChars  = 20
	minArticleChars    = 100
)

// botUserAgent identifies the service on endpoints that expect a descriptive
// agent string (Reddit rejects generic browser agents on its JSON views).
const botUserAgent = "Cronkite-FactChecker/1.0"

// Extractor turns a source-specific URL into plain text. It fails with a
// *model.ExtractionError when no usable text can be produced and never
// returns text below its minimum-length threshold.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) (string, error)
}

// Set holds one extractor per content-source kind and dispatches on the
// classified kind of the URL.
type Set struct {
	youtube   *YouTubeExtractor
	twitter   *TwitterExtractor
	tiktok    *TikTokExtractor
	reddit    *RedditExtractor
	instagram *InstagramExtractor
	article   *ArticleExtractor
}

// NewSet builds the full extractor set from configuration.
func NewSet(cfg *model.Config) *Set {
	browser := NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes)
	bot := NewFetcher(cfg.HTTP.Timeout, botUserAgent, cfg.HTTP.MaxBodyBytes)

	var robots *RobotsChecker
	if cfg.HTTP.RespectRobots {
		robots = NewRobotsChecker(botUserAgent, cfg.HTTP.Timeout)
	}

	return &Set{
		youtube:   NewYouTubeExtractor(browser, cfg.YouTube.APIKey),
		twitter:   NewTwitterExtractor(browser),
		tiktok:    NewTikTokExtractor(browser),
		reddit:    NewRedditExtractor(bot),
		instagram: NewInstagramExtractor(browser),
		article:   NewArticleExtractor(browser, robots),
	}
}

// Extract classifies the URL and runs the matching extractor, returning the
// extracted text and the kind it was classified as.
func (s *Set) Extract(ctx context.Context, rawURL string) (string, Kind, error) {
	kind := Classify(rawURL)
	text, err := s.ForKind(kind).Extract(ctx, rawURL)
	return text, kind, err
}

// ForKind returns the extractor handling the given kind.
func (s *Set) ForKind(kind Kind) Extractor {
	switch kind {
	case KindYouTube:
		return s.youtube
	case KindTwitter:
		return s.twitter
	case KindTikTok:
		return s.tiktok
	case KindReddit:
		return s.reddit
	case KindInstagram:
		return s.instagram
	default:
		return s.article
	}
}

// YouTube exposes the video extractor for the transcript-only endpoint.
func (s *Set) YouTube() *YouTubeExtractor { return s.youtube }
