// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// hostLimiter hands out one token bucket per host.
type hostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newHostLimiter(rps float64, burst int) *hostLimiter {
	if burst <= 0 {
		burst = 1
	}
	lim := rate.Limit(rps)
	if rps <= 0 {
		lim = rate.Inf
	}
	return &hostLimiter{limiters: make(map[string]*rate.Limiter), rate: lim, burst: burst}
}

// Wait blocks until a request to rawURL's host is allowed.
func (l *hostLimiter) Wait(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing url %q: %w", rawURL, err)
	}
	return l.get(u.Host).Wait(ctx)
}

// SlowDown lowers the rate for host to one request per delay when that is
// slower than the configured rate.
func (l *hostLimiter) SlowDown(host string, delay time.Duration) {
	if delay <= 0 {
		return
	}
	lim := l.get(host)
	if every := rate.Every(delay); every < lim.Limit() {
		lim.SetLimit(every)
	}
}

func (l *hostLimiter) get(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[host]
	if !ok {
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[host] = lim
	}
	return lim
}
