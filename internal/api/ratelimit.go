// Rate limiter for endpoints that consume model tokens. Fixed-window count
// per client IP, held in memory.
package api

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter caps requests per client within a rolling fixed window. Stale
// windows are swept opportunistically on Allow, so the limiter needs no
// background goroutine.
type RateLimiter struct {
	limit  int
	window time.Duration

	mu        sync.Mutex
	windows   map[string]window
	lastSweep time.Time
}

type window struct {
	count    int
	openedAt time.Time
}

// NewRateLimiter allows limit requests per window per client IP.
func NewRateLimiter(limit int, windowDur time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		window:    windowDur,
		windows:   make(map[string]window),
		lastSweep: time.Now(),
	}
}

// Allow records one request for the IP and reports whether it fit inside
// the limit.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.sweepLocked(now)

	w := rl.windows[ip]
	if w.openedAt.IsZero() || now.Sub(w.openedAt) >= rl.window {
		rl.windows[ip] = window{count: 1, openedAt: now}
		return true
	}
	if w.count >= rl.limit {
		return false
	}
	w.count++
	rl.windows[ip] = w
	return true
}

// RetryAfter returns whole seconds until the IP's window reopens, rounded
// up. Zero when the IP is not limited.
func (rl *RateLimiter) RetryAfter(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[ip]
	if !ok || w.count < rl.limit {
		return 0
	}
	left := rl.window - time.Since(w.openedAt)
	if left <= 0 {
		return 0
	}
	return int(left.Seconds()) + 1
}

// sweepLocked drops windows old enough that they can no longer limit
// anything. Runs at most once per window duration.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now
	for ip, w := range rl.windows {
		if now.Sub(w.openedAt) >= rl.window {
			delete(rl.windows, ip)
		}
	}
}

// RateLimitMiddleware wraps a handler with rate limiting. Returns 429 with a
// Retry-After header when exceeded.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.Allow(ip) {
			w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter(ip)))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// clientIP prefers X-Forwarded-For for proxied requests, otherwise strips
// the port from the remote address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	ip := r.RemoteAddr
	if i := strings.LastIndexByte(ip, ':'); i >= 0 {
		return ip[:i]
	}
	return ip
}
