package middleware

import (
	"context"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"gsi-session/internal/observability"

	"golang.org/x/time/rate"
)

const (
	// Maximum number of limiters to keep in memory
	maxLimiters = 10000
	// How often inactive limiters are swept
	cleanupInterval = 5 * time.Minute
	// Limiter is considered inactive if not used for this duration
	limiterTTL = 15 * time.Minute
)

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter limits requests per client IP. It is meant for the sign-in
// POST, the only endpoint that calls out to the identity provider.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewRateLimiter starts a limiter whose sweeper runs until ctx is done or
// Stop is called.
func NewRateLimiter(ctx context.Context, requestsPerSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		stopCh:   make(chan struct{}),
	}
	go rl.cleanupLoop(ctx)
	return rl
}

func (rl *RateLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-rl.stopCh:
			return
		case now := <-ticker.C:
			rl.cleanup(now)
		}
	}
}

// cleanup drops idle limiters, then the least recently used ones while
// over capacity
func (rl *RateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, entry := range rl.limiters {
		if now.Sub(entry.lastAccess) > limiterTTL {
			delete(rl.limiters, key)
		}
	}
	if len(rl.limiters) <= maxLimiters {
		return
	}

	keys := make([]string, 0, len(rl.limiters))
	for k := range rl.limiters {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return rl.limiters[keys[i]].lastAccess.Before(rl.limiters[keys[j]].lastAccess)
	})
	for _, k := range keys[:len(keys)-maxLimiters/2] {
		delete(rl.limiters, k)
	}
}

// Stop stops the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastAccess = time.Now()
	return entry.limiter
}

// Middleware rejects over-limit requests with onLimit, or a plain 429 when
// onLimit is nil.
func (rl *RateLimiter) Middleware(onLimit http.Handler) func(http.Handler) http.Handler {
	if onLimit == nil {
		onLimit = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		})
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.getLimiter(clientIP(r)).Allow() {
				observability.SecurityEvent(r, "rate limit exceeded", "too many requests")
				observability.SignInAttempts.WithLabelValues("rate_limited").Inc()
				onLimit.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr, which chi's RealIP middleware
// has already rewritten from proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
