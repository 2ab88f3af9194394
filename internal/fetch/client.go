// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads source documents and the reference data used to
// check extracted citations: decision texts from the rechtspraak.nl
// document API and outgoing links from the LiDO linked-data service.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/mastaal/nllegalcit/internal/httputil"
	"github.com/mastaal/nllegalcit/pkg/types"
)

const (
	defaultRechtspraakURL = "https://uitspraken.rechtspraak.nl/api/document/"
	defaultLidoURL        = "https://linkeddata.overheid.nl/terms/jurisprudentie/id/"

	// maxBody bounds a single downloaded document.
	maxBody = 64 << 20
)

// Response is a downloaded document.
type Response struct {
	URL         string
	ContentType string
	Body        []byte
}

// Client performs rate-limited, retried and cached GET requests.
type Client struct {
	http    *http.Client
	cfg     types.HTTPConfig
	limiter *hostLimiter
	robots  *robotsChecker
	cache   *gocache.Cache
	log     *zap.Logger
}

// New returns a Client configured by cfg. A nil log discards output.
func New(cfg types.HTTPConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RechtspraakURL == "" {
		cfg.RechtspraakURL = defaultRechtspraakURL
	}
	if cfg.LidoURL == "" {
		cfg.LidoURL = defaultLidoURL
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	c := &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
		limiter: newHostLimiter(cfg.RequestsPerSecond, cfg.Burst),
		cache:   gocache.New(ttl, 2*ttl),
		log:     log,
	}
	if cfg.RespectRobots {
		c.robots = newRobotsChecker(c.http, cfg.UserAgent, log)
	}
	return c
}

// Get downloads rawURL. Successful responses are cached for the configured
// TTL, so repeated requests for one document hit the network once. When
// robots.txt is respected, a disallowed URL fails with ErrDisallowed and a
// crawl delay slows the host's rate limit.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	if v, ok := c.cache.Get(rawURL); ok {
		c.log.Debug("cache hit", zap.String("url", rawURL))
		return v.(*Response), nil
	}

	if c.robots != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("parsing url %q: %w", rawURL, err)
		}
		allowed, delay := c.robots.Allowed(ctx, u)
		if !allowed {
			return nil, fmt.Errorf("fetching %s: %w", rawURL, ErrDisallowed)
		}
		c.limiter.SlowDown(u.Host, delay)
	}

	if err := c.limiter.Wait(ctx, rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	start := time.Now()
	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.MaxRetries, c.log)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: HTTP %d", rawURL, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rawURL, err)
	}

	out := &Response{URL: rawURL, ContentType: resp.Header.Get("Content-Type"), Body: body}
	c.cache.SetDefault(rawURL, out)
	c.log.Debug("fetched document",
		zap.String("url", rawURL),
		zap.String("content_type", out.ContentType),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}
