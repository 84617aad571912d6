package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rp-magrathea/vogsphere/internal/cache"
	"github.com/rp-magrathea/vogsphere/internal/model"
	"go.uber.org/zap"
)

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("Expected test-agent, got %q", ua)
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<form></form>")
	}))
	defer server.Close()

	cfg := testConfig().Form
	cfg.UserAgent = "test-agent"
	f := NewFetcher(cfg, nil, zap.NewNop())

	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(body) != "<form></form>" {
		t.Errorf("Unexpected body: %s", body)
	}
}

func TestFetcher_UsesCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = fmt.Fprint(w, "<form></form>")
	}))
	defer server.Close()

	f := NewFetcher(testConfig().Form, cache.NewMemoryCache(time.Minute, time.Minute), zap.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := f.Fetch(context.Background(), server.URL); err != nil {
			t.Fatalf("Fetch %d: expected no error, got %v", i, err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("Expected 1 request with caching, got %d", hits.Load())
	}
}

func TestFetcher_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(testConfig().Form, nil, zap.NewNop())
	_, err := f.Fetch(context.Background(), server.URL)
	if err == nil || err.Error() != "unexpected status: 404 Not Found" {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestFetcher_MaxBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "0123456789")
	}))
	defer server.Close()

	c := cache.NewMemoryCache(time.Minute, time.Minute)
	cfg := testConfig().Form
	cfg.MaxBytes = 4
	_, err := NewFetcher(cfg, c, zap.NewNop()).Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("Expected ErrTooLarge, got %v", err)
	}
	if _, ok := c.Get(cache.FormKey(server.URL)); ok {
		t.Error("Expected an oversized page not to be cached")
	}

	cfg.MaxBytes = 10
	body, err := NewFetcher(cfg, nil, zap.NewNop()).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected a page of exactly max bytes to pass, got %v", err)
	}
	if string(body) != "0123456789" {
		t.Errorf("Unexpected body: %q", body)
	}
}

func TestFetcher_RobotsDisallow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /forms/\n")
			return
		}
		_, _ = fmt.Fprint(w, "<form></form>")
	}))
	defer server.Close()

	cfg := testConfig().Form
	cfg.RespectRobots = true
	f := NewFetcher(cfg, nil, zap.NewNop())

	_, err := f.Fetch(context.Background(), server.URL+"/forms/claim.html")
	if !errors.Is(err, ErrDisallowed) {
		t.Errorf("Expected ErrDisallowed, got %v", err)
	}

	if _, err := f.Fetch(context.Background(), server.URL+"/claim.html"); err != nil {
		t.Errorf("Expected allowed path to fetch, got %v", err)
	}
}

func TestFetcher_LoadLocalFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "form.html", "<form></form>")
	f := NewFetcher(model.DefaultConfig().Form, nil, zap.NewNop())

	body, err := f.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(body) != "<form></form>" {
		t.Errorf("Unexpected body: %s", body)
	}

	if _, err := f.Load(context.Background(), path+".missing"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestIsRemote(t *testing.T) {
	if !IsRemote("https://example.com/form") || !IsRemote("http://example.com") {
		t.Error("Expected http(s) URLs to be remote")
	}
	if IsRemote("forms/claim.html") || IsRemote("httpdocs/form.html") {
		t.Error("Expected paths to be local")
	}
}
