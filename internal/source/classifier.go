package source

import (
	"regexp"
	"strings"
)

// Kind classifies a URL into one of the supported content-platform categories.
type Kind string

const (
	KindYouTube   Kind = "youtube"
	KindTwitter   Kind = "twitter"
	KindTikTok    Kind = "tiktok"
	KindReddit    Kind = "reddit"
	KindInstagram Kind = "instagram"
	KindArticle   Kind = "article"
)

var (
	youtubeURLRe = regexp.MustCompile(`(youtube\.com/watch|youtu\.be/)`)
	twitterURLRe = regexp.MustCompile(`(twitter\.com|x\.com)/\w+/status/`)
)

// Classify maps a URL to its content-source kind. Classification is total:
// every URL maps to exactly one kind, with KindArticle as the fallback.
// Checks run in a fixed priority order because some domains could match more
// than one pattern family.
func Classify(rawURL string) Kind {
	switch {
	case youtubeURLRe.MatchString(rawURL):
		return KindYouTube
	case twitterURLRe.MatchString(rawURL):
		return KindTwitter
	case strings.Contains(rawURL, "tiktok.com"):
		return KindTikTok
	case strings.Contains(rawURL, "reddit.com/r/"):
		return KindReddit
	case strings.Contains(rawURL, "instagram.com"):
		return KindInstagram
	default:
		return KindArticle
	}
}
