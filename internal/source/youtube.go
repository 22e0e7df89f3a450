package source

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/cronkite-edu/cronkite/internal/model"
)

// videoIDRe extracts the 11-character video identifier from watch and
// short-link URLs.
var videoIDRe = regexp.MustCompile(`(?:v=|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// preferredLangs are tried first, in order, before falling back to
// auto-generated or any-language tracks.
var preferredLangs = []string{"en", "en-US", "en-GB"}

// YouTubeExtractor extracts video content as text. It works through an
// ordered list of transcript strategies and, when every strategy is
// exhausted, falls back to synthesizing a text blob from Data API metadata
// if an API key is configured.
type YouTubeExtractor struct {
	fetcher       *Fetcher
	apiKey        string
	timedtextBase string
	dataAPIBase   string
}

// NewYouTubeExtractor creates the video extractor. apiKey may be empty, in
// which case the metadata fallback is unavailable.
func NewYouTubeExtractor(fetcher *Fetcher, apiKey string) *YouTubeExtractor {
	return &YouTubeExtractor{
		fetcher:       fetcher,
		apiKey:        apiKey,
		timedtextBase: "https://www.youtube.com/api/timedtext",
		dataAPIBase:   "https://www.googleapis.com/youtube/v3",
	}
}

// Extract implements the Extractor contract for video URLs.
func (e *YouTubeExtractor) Extract(ctx context.Context, rawURL string) (string, error) {
	m := videoIDRe.FindStringSubmatch(rawURL)
	if m == nil {
		return "", model.Validationf("could not parse YouTube video ID from URL")
	}
	videoID := m[1]
	log.Printf("youtube: fetching content for video_id=%s api_key_set=%t", videoID, e.apiKey != "")

	// Ordered transcript strategies. Each failure is logged and swallowed;
	// only the exhaustion of every path is a hard error.
	strategies := []struct {
		name string
		run  func(context.Context, string) (string, error)
	}{
		{"preferred languages", e.fetchPreferredTranscript},
		{"generated transcript", e.fetchGeneratedTranscript},
		{"first available track", e.fetchFirstAvailableTranscript},
	}

	for _, s := range strategies {
		text, err := s.run(ctx, videoID)
		if err != nil {
			log.Printf("youtube: %s failed for %s: %v", s.name, videoID, err)
			continue
		}
		if len(text) >= minTranscriptChars {
			log.Printf("youtube: %s yielded %d chars for %s", s.name, len(text), videoID)
			return text, nil
		}
		log.Printf("youtube: %s too short (%d chars) for %s", s.name, len(text), videoID)
	}

	if e.apiKey == "" {
		return "", model.Extractionf("youtube",
			"no transcript available for video %s and no YouTube API key is configured", videoID)
	}

	return e.extractFromMetadata(ctx, videoID)
}

// fetchPreferredTranscript tries the manually uploaded transcript in each
// preferred language variant.
func (e *YouTubeExtractor) fetchPreferredTranscript(ctx context.Context, videoID string) (string, error) {
	var lastErr error
	for _, lang := range preferredLangs {
		text, err := e.fetchTrack(ctx, videoID, lang, "")
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// fetchGeneratedTranscript tries the auto-generated English track.
func (e *YouTubeExtractor) fetchGeneratedTranscript(ctx context.Context, videoID string) (string, error) {
	return e.fetchTrack(ctx, videoID, "en", "asr")
}

// fetchFirstAvailableTranscript lists tracks and fetches the first one in
// any language.
func (e *YouTubeExtractor) fetchFirstAvailableTranscript(ctx context.Context, videoID string) (string, error) {
	body, err := e.fetcher.Get(ctx, fmt.Sprintf("%s?type=list&v=%s", e.timedtextBase, url.QueryEscape(videoID)))
	if err != nil {
		return "", fmt.Errorf("list tracks: %w", err)
	}

	var list struct {
		Tracks []struct {
			LangCode string `xml:"lang_code,attr"`
			Kind     string `xml:"kind,attr"`
		} `xml:"track"`
	}
	if err := xml.Unmarshal(body, &list); err != nil {
		return "", fmt.Errorf("parse track list: %w", err)
	}
	if len(list.Tracks) == 0 {
		return "", fmt.Errorf("no transcript tracks listed")
	}

	first := list.Tracks[0]
	log.Printf("youtube: falling back to first available track: language=%s", first.LangCode)
	return e.fetchTrack(ctx, videoID, first.LangCode, first.Kind)
}

// fetchTrack downloads one timedtext track and joins its caption lines.
func (e *YouTubeExtractor) fetchTrack(ctx context.Context, videoID, lang, kind string) (string, error) {
	q := url.Values{}
	q.Set("v", videoID)
	q.Set("lang", lang)
	if kind != "" {
		q.Set("kind", kind)
	}

	body, err := e.fetcher.Get(ctx, e.timedtextBase+"?"+q.Encode())
	if err != nil {
		return "", err
	}

	var transcript struct {
		Lines []struct {
			Text string `xml:",chardata"`
		} `xml:"text"`
	}
	if err := xml.Unmarshal(body, &transcript); err != nil {
		return "", fmt.Errorf("parse transcript: %w", err)
	}
	if len(transcript.Lines) == 0 {
		return "", fmt.Errorf("empty transcript for lang=%s", lang)
	}

	parts := make([]string, 0, len(transcript.Lines))
	for _, line := range transcript.Lines {
		if t := strings.TrimSpace(html.UnescapeString(line.Text)); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " "), nil
}

// extractFromMetadata synthesizes a text blob from Data API video metadata.
// The caption-track listing beforehand is informational only: track download
// requires OAuth, so its result is logged and never treated as an error.
func (e *YouTubeExtractor) extractFromMetadata(ctx context.Context, videoID string) (string, error) {
	log.Printf("youtube: falling back to Data API metadata for %s", videoID)

	tracks, err := e.listCaptions(ctx, videoID)
	switch {
	case err != nil:
		log.Printf("youtube: captions.list failed for %s: %v", videoID, err)
	case len(tracks) > 0:
		log.Printf("youtube: caption tracks available for %s: %v", videoID, tracks)
	default:
		log.Printf("youtube: no caption tracks found for %s via Data API", videoID)
	}

	snippet, err := e.fetchVideoSnippet(ctx, videoID)
	if err != nil {
		return "", &model.ExtractionError{
			Source: "youtube",
			Reason: fmt.Sprintf("no transcript and metadata fetch also failed for %s", videoID),
			Err:    err,
		}
	}

	parts := []string{"Video title: " + snippet.Title}
	if snippet.ChannelTitle != "" {
		parts = append(parts, "Channel: "+snippet.ChannelTitle)
	}
	if snippet.Description != "" {
		parts = append(parts, "Description: "+snippet.Description)
	}
	if len(snippet.Tags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(snippet.Tags, ", "))
	}

	text := strings.Join(parts, "\n\n")
	if len(text) < minTranscriptChars {
		return "", model.Extractionf("youtube",
			"video %s has no transcript and insufficient metadata for analysis", videoID)
	}

	log.Printf("youtube: metadata fallback for %s: %d chars", videoID, len(text))
	return text, nil
}

// videoSnippet is the subset of the Data API videos.list snippet we use.
type videoSnippet struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	ChannelTitle string   `json:"channelTitle"`
}

// listCaptions lists caption-track metadata. A 403 means captions are
// disabled or private and is reported as "no tracks", not an error.
func (e *YouTubeExtractor) listCaptions(ctx context.Context, videoID string) ([]string, error) {
	q := url.Values{}
	q.Set("videoId", videoID)
	q.Set("part", "snippet")
	q.Set("key", e.apiKey)

	status, body, err := e.fetcher.Do(ctx, e.dataAPIBase+"/captions?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if status == http.StatusForbidden {
		log.Printf("youtube: captions.list 403 for %s, captions may be disabled or private", videoID)
		return nil, nil
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("captions.list status %d", status)
	}

	var payload struct {
		Items []struct {
			Snippet struct {
				Language  string `json:"language"`
				TrackKind string `json:"trackKind"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse captions list: %w", err)
	}

	tracks := make([]string, 0, len(payload.Items))
	for _, item := range payload.Items {
		tracks = append(tracks, fmt.Sprintf("%s (%s)", item.Snippet.Language, item.Snippet.TrackKind))
	}
	return tracks, nil
}

// fetchVideoSnippet fetches title/description/tags/channel via videos.list.
func (e *YouTubeExtractor) fetchVideoSnippet(ctx context.Context, videoID string) (*videoSnippet, error) {
	q := url.Values{}
	q.Set("id", videoID)
	q.Set("part", "snippet")
	q.Set("key", e.apiKey)

	body, err := e.fetcher.Get(ctx, e.dataAPIBase+"/videos?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("videos.list: %w", err)
	}

	var payload struct {
		Items []struct {
			Snippet videoSnippet `json:"snippet"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse videos.list: %w", err)
	}
	if len(payload.Items) == 0 {
		return nil, fmt.Errorf("no video found for id=%s", videoID)
	}
	return &payload.Items[0].Snippet, nil
}
