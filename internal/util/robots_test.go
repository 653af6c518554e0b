package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_DisallowedPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nDisallow: /members/\nCrawl-delay: 2\n"))
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	checker := NewRobotsChecker("adcomply", 5*time.Second)
	ctx := context.Background()

	allowed, _, err := checker.CanFetch(ctx, server.URL+"/members/lp")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if allowed {
		t.Error("expected /members/ disallowed")
	}

	allowed, delay, err := checker.CanFetch(ctx, server.URL+"/lp/serum")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("expected /lp/ allowed")
	}
	if delay != 2*time.Second {
		t.Errorf("crawl delay = %v, want 2s", delay)
	}
}

func TestRobotsChecker_MissingRobotsAllowsAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	checker := NewRobotsChecker("adcomply", 5*time.Second)

	allowed, delay, err := checker.CanFetch(context.Background(), server.URL+"/any/page")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed || delay != 0 {
		t.Errorf("expected unrestricted fetch, got allowed=%v delay=%v", allowed, delay)
	}
}

func TestRobotsChecker_RulesCachedPerHost(t *testing.T) {
	var robotsFetches int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			atomic.AddInt32(&robotsFetches, 1)
			w.Write([]byte("User-agent: *\nAllow: /\n"))
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	checker := NewRobotsChecker("adcomply", 5*time.Second)
	ctx := context.Background()

	for _, path := range []string{"/lp/a", "/lp/b", "/lp/c"} {
		if _, _, err := checker.CanFetch(ctx, server.URL+path); err != nil {
			t.Fatalf("CanFetch failed: %v", err)
		}
	}

	if n := atomic.LoadInt32(&robotsFetches); n != 1 {
		t.Errorf("robots.txt fetched %d times for one host, want 1", n)
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{"adcomply/0.1 (+https://github.com/yuidev/adcomply)", "adcomply"},
		{"adcomply", "adcomply"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeUserAgent(tt.ua); got != tt.want {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", tt.ua, got, tt.want)
		}
	}
}
