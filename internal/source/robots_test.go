package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker(t *testing.T) {
	var fetches int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(&fetches, 1)
		w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	}))
	defer srv.Close()

	checker := NewRobotsChecker("Cronkite-FactChecker/1.0", 5*time.Second)
	ctx := context.Background()

	if !checker.CanFetch(ctx, srv.URL+"/news/story") {
		t.Error("Allowed path should be fetchable")
	}
	if checker.CanFetch(ctx, srv.URL+"/private/page") {
		t.Error("Disallowed path should not be fetchable")
	}
	if got := atomic.LoadInt32(&fetches); got != 1 {
		t.Errorf("Expected robots.txt to be fetched once per host, got %d", got)
	}
}

func TestRobotsChecker_FailureAllows(t *testing.T) {
	// Unreachable host: the checker must allow rather than block.
	checker := NewRobotsChecker("Cronkite-FactChecker/1.0", 500*time.Millisecond)
	if !checker.CanFetch(context.Background(), "http://127.0.0.1:1/page") {
		t.Error("Fetch should be allowed when robots.txt is unobtainable")
	}
}
