package worker

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles outbound requests per host so no single site is
// hammered during batch validation.
type Limiter struct {
	mu     sync.Mutex
	byHost map[string]*rate.Limiter
	rps    rate.Limit
	burst  int
}

// NewLimiter creates a per-host limiter with the given rate and burst
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst <= 0 {
		burst = 3
	}

	return &Limiter{
		byHost: make(map[string]*rate.Limiter),
		rps:    rate.Limit(requestsPerSecond),
		burst:  burst,
	}
}

// Wait blocks until the URL's host has rate limit headroom
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	return l.forHost(parsed.Host).Wait(ctx)
}

// Allow reports whether a request to the URL's host may proceed now
func (l *Limiter) Allow(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return l.forHost(parsed.Host).Allow()
}

func (l *Limiter) forHost(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.byHost[host]
	if !exists {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.byHost[host] = limiter
	}
	return limiter
}
