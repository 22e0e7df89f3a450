package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cronkite-edu/cronkite/internal/model"
)

func TestArticleExtract(t *testing.T) {
	para := "The council approved the new transport budget after a lengthy debate on Tuesday evening."
	page := `<!DOCTYPE html><html><head><title>Council news</title></head><body>
		<nav>Home | News | Sport</nav>
		<article>
			<h1>Budget approved</h1>
			<p>` + para + `</p>
			<p>Opposition members criticised the allocation for cycling infrastructure.</p>
		</article>
		<footer>Copyright</footer>
	</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	e := NewArticleExtractor(testFetcher(), nil)
	text, err := e.Extract(context.Background(), srv.URL+"/news/budget")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// Either pass may win; both must surface the article body.
	if !strings.Contains(text, "transport budget") {
		t.Errorf("Article body missing from extraction: %q", text)
	}
	if !strings.Contains(text, "cycling infrastructure") {
		t.Errorf("Second paragraph missing from extraction: %q", text)
	}
}

func TestArticleExtract_ParagraphFallback(t *testing.T) {
	// No <article> wrapper and little structure: the paragraph pass should
	// still gather the long paragraphs.
	long := strings.Repeat("Sentence with enough words to pass the length filter. ", 3)
	page := `<html><body><div><p>` + long + `</p><p>short</p></div></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	e := NewArticleExtractor(testFetcher(), nil)
	text, err := e.Extract(context.Background(), srv.URL+"/plain")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(text, "length filter") {
		t.Errorf("Long paragraph missing: %q", text)
	}
}

func TestArticleExtract_NothingExtractable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div>nav nav nav</div></body></html>`))
	}))
	defer srv.Close()

	e := NewArticleExtractor(testFetcher(), nil)
	_, err := e.Extract(context.Background(), srv.URL+"/empty")
	var eerr *model.ExtractionError
	if !errors.As(err, &eerr) {
		t.Fatalf("Expected ExtractionError, got %T: %v", err, err)
	}
	if !strings.Contains(eerr.Reason, "pasting the text directly") {
		t.Errorf("Reason should suggest pasting text: %q", eerr.Reason)
	}
}

func TestArticleExtract_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	e := NewArticleExtractor(testFetcher(), nil)
	_, err := e.Extract(context.Background(), srv.URL+"/gone")
	var eerr *model.ExtractionError
	if !errors.As(err, &eerr) {
		t.Fatalf("Expected ExtractionError, got %T: %v", err, err)
	}
}
