package contact

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	DefaultRateLimit = 5
	DefaultBurst     = 3

	// maxBuckets bounds the memory held for clients that stopped sending.
	maxBuckets = 10000
)

type bucket struct {
	tokens float64
	last   time.Time
}

// RateLimiter throttles submissions per client with a token bucket that
// refills at limitPerMinute and holds at most burst tokens.
type RateLimiter struct {
	mu            sync.Mutex
	ratePerSecond float64
	burst         float64
	buckets       map[string]bucket
}

// NewRateLimiter creates a limiter. Non-positive arguments take the
// defaults.
func NewRateLimiter(limitPerMinute, burst int) *RateLimiter {
	if limitPerMinute <= 0 {
		limitPerMinute = DefaultRateLimit
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &RateLimiter{
		ratePerSecond: float64(limitPerMinute) / 60.0,
		burst:         float64(burst),
		buckets:       make(map[string]bucket),
	}
}

// Allow takes a token from key's bucket, reporting false when it is empty.
// A nil limiter allows everything.
func (l *RateLimiter) Allow(key string, now time.Time) bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= maxBuckets {
			l.prune(now)
		}
		b = bucket{tokens: l.burst, last: now}
	}

	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens += elapsed * l.ratePerSecond
		if b.tokens > l.burst {
			b.tokens = l.burst
		}
		b.last = now
	}

	if b.tokens < 1 {
		l.buckets[key] = b
		return false
	}

	b.tokens--
	l.buckets[key] = b
	return true
}

// prune drops buckets that have refilled completely; they behave exactly
// like a new bucket.
func (l *RateLimiter) prune(now time.Time) {
	for key, b := range l.buckets {
		if b.tokens+now.Sub(b.last).Seconds()*l.ratePerSecond >= l.burst {
			delete(l.buckets, key)
		}
	}
}

// ClientIP returns the host part of r.RemoteAddr. chi's RealIP middleware
// has already rewritten RemoteAddr when the site sits behind a proxy.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	host = strings.TrimSpace(host)
	if host == "" {
		return "unknown"
	}
	return host
}
