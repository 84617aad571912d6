package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rp-magrathea/vogsphere/internal/cache"
	"github.com/rp-magrathea/vogsphere/internal/model"
	"github.com/rp-magrathea/vogsphere/internal/util"
	"go.uber.org/zap"
)

// ErrDisallowed is returned when robots.txt forbids fetching a form page
var ErrDisallowed = errors.New("disallowed by robots.txt")

// ErrTooLarge is returned when a form page exceeds the configured size limit
var ErrTooLarge = errors.New("form page too large")

// Fetcher loads form pages from disk or over HTTP
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	cache      cache.Cache         // nil disables caching
	robots     *util.RobotsChecker // nil skips robots.txt
	limiter    *util.HostLimiter
	logger     *zap.Logger
}

// NewFetcher creates a Fetcher from the form settings
func NewFetcher(cfg model.FormConfig, c cache.Cache, logger *zap.Logger) *Fetcher {
	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = model.DefaultConfig().Form.MaxBytes
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  maxBytes,
		cache:     c,
		robots:    robots,
		limiter:   util.NewHostLimiter(cfg.RequestsPerSecond, cfg.Burst),
		logger:    logger,
	}
}

// IsRemote reports whether a form location is an http(s) URL
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Load returns the form page at location, a file path or an http(s) URL
func (f *Fetcher) Load(ctx context.Context, location string) ([]byte, error) {
	if IsRemote(location) {
		return f.Fetch(ctx, location)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("read form: %w", err)
	}
	return data, nil
}

// Fetch retrieves a remote form page, using the cache when possible
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	key := cache.FormKey(rawURL)
	if f.cache != nil {
		if data, ok := f.cache.Get(key); ok {
			f.logger.Debug("Form cache hit", zap.String("url", rawURL))
			return data, nil
		}
	}

	var crawlDelay time.Duration
	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("check robots.txt: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %s", ErrDisallowed, rawURL)
		}
		crawlDelay = delay
	}

	if err := f.limiter.Wait(ctx, rawURL, crawlDelay); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, f.maxBytes)
	}

	f.logger.Debug("Fetched form",
		zap.String("url", rawURL),
		zap.String("final_url", resp.Request.URL.String()),
		zap.Int("bytes", len(body)))

	if f.cache != nil {
		if err := f.cache.Set(key, body, 0); err != nil {
			f.logger.Warn("Failed to cache form", zap.String("url", rawURL), zap.Error(err))
		}
	}

	return body, nil
}
