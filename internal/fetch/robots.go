// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
)

// ErrDisallowed is returned by Client.Get when the site's robots.txt does
// not allow the configured user agent to fetch the URL.
var ErrDisallowed = errors.New("disallowed by robots.txt")

// robotsChecker fetches and caches robots.txt per scheme and host.
type robotsChecker struct {
	mu    sync.Mutex
	sites map[string]*robotstxt.RobotsData
	http  *http.Client
	agent string
	log   *zap.Logger
}

func newRobotsChecker(client *http.Client, userAgent string, log *zap.Logger) *robotsChecker {
	return &robotsChecker{
		sites: make(map[string]*robotstxt.RobotsData),
		http:  client,
		agent: userAgent,
		log:   log,
	}
}

// Allowed reports whether u may be fetched and the crawl delay the site
// asks for. A robots.txt that cannot be retrieved allows everything.
func (r *robotsChecker) Allowed(ctx context.Context, u *url.URL) (bool, time.Duration) {
	data := r.site(ctx, u)
	agent := productToken(r.agent)
	if !data.TestAgent(u.EscapedPath(), agent) {
		return false, 0
	}
	if g := data.FindGroup(agent); g != nil {
		return true, g.CrawlDelay
	}
	return true, 0
}

func (r *robotsChecker) site(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	key := u.Scheme + "://" + u.Host
	r.mu.Lock()
	data, ok := r.sites[key]
	r.mu.Unlock()
	if ok {
		return data
	}

	data = r.fetch(ctx, key+"/robots.txt")
	r.mu.Lock()
	r.sites[key] = data
	r.mu.Unlock()
	return data
}

func (r *robotsChecker) fetch(ctx context.Context, robotsURL string) *robotstxt.RobotsData {
	allowAll, _ := robotstxt.FromStatusAndBytes(http.StatusNotFound, nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return allowAll
	}
	if r.agent != "" {
		req.Header.Set("User-Agent", r.agent)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		r.log.Debug("robots.txt unavailable", zap.String("url", robotsURL), zap.Error(err))
		return allowAll
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512<<10))
	if err != nil {
		return allowAll
	}
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		r.log.Debug("robots.txt unparsable", zap.String("url", robotsURL), zap.Error(err))
		return allowAll
	}
	return data
}

// productToken reduces a User-Agent header to the name robots.txt groups
// match against, e.g. "nllegalcit/0.3 (+mailto:x)" to "nllegalcit".
func productToken(ua string) string {
	fields := strings.Fields(ua)
	if len(fields) == 0 {
		return "*"
	}
	name, _, _ := strings.Cut(fields[0], "/")
	return name
}
