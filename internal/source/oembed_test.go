package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cronkite-edu/cronkite/internal/model"
)

func TestTwitterExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("omit_script") != "true" {
			t.Error("Expected omit_script=true")
		}
		w.Write([]byte(`{
			"html": "<blockquote><p>Breaking: the vote passed 52 to 48.</p>&mdash; Jane Doe</blockquote>",
			"author_name": "Jane Doe"
		}`))
	}))
	defer srv.Close()

	e := NewTwitterExtractor(testFetcher())
	e.oembedBase = srv.URL

	text, err := e.Extract(context.Background(), "https://twitter.com/jane/status/1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if text != "Jane Doe: Breaking: the vote passed 52 to 48." {
		t.Errorf("Unexpected text: %q", text)
	}
}

func TestTwitterExtract_NoParagraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"html": "<blockquote></blockquote>", "author_name": "Jane"}`))
	}))
	defer srv.Close()

	e := NewTwitterExtractor(testFetcher())
	e.oembedBase = srv.URL

	_, err := e.Extract(context.Background(), "https://twitter.com/jane/status/2")
	var eerr *model.ExtractionError
	if !errors.As(err, &eerr) {
		t.Fatalf("Expected ExtractionError, got %T: %v", err, err)
	}
}

func TestTikTokExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title": "Fact checking the viral clip", "author_name": "creator"}`))
	}))
	defer srv.Close()

	e := NewTikTokExtractor(testFetcher())
	e.oembedBase = srv.URL

	text, err := e.Extract(context.Background(), "https://www.tiktok.com/@creator/video/1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if text != "creator: Fact checking the viral clip" {
		t.Errorf("Unexpected text: %q", text)
	}
}

func TestTikTokExtract_EmptyTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title": "", "author_name": "creator"}`))
	}))
	defer srv.Close()

	e := NewTikTokExtractor(testFetcher())
	e.oembedBase = srv.URL

	_, err := e.Extract(context.Background(), "https://www.tiktok.com/@creator/video/2")
	var eerr *model.ExtractionError
	if !errors.As(err, &eerr) {
		t.Fatalf("Expected ExtractionError, got %T: %v", err, err)
	}
}
