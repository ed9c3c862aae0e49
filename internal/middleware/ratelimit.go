package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/templui/medtrack/internal/ctxkeys"
)

// RateLimiter is a sliding-window request counter per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

// Allow records a request from ip and reports whether it is within the limit.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	// Drop requests that fell out of the window
	recent := rl.requests[ip][:0]
	for _, t := range rl.requests[ip] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	// Over the limit: keep the trimmed history but do not count this request
	if len(recent) >= rl.limit {
		rl.requests[ip] = recent
		return false
	}

	rl.requests[ip] = append(recent, now)
	return true
}

// Cleanup drops clients with no request inside twice the window.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window * 2)
	for ip, requests := range rl.requests {
		if len(requests) == 0 || !requests[len(requests)-1].After(cutoff) {
			delete(rl.requests, ip)
		}
	}
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		rl.Cleanup()
	}
}

// RateLimit guards a handler with limit requests per window per client IP.
// A non-positive limit disables it.
func RateLimit(limit int, window time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	if limit <= 0 {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	limiter := NewRateLimiter(limit, window)
	go limiter.cleanupLoop(5 * time.Minute)

	return limiter.Middleware
}

func (rl *RateLimiter) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.Allow(ip) {
			slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// clientIP extracts the client IP from the request.
// X-Forwarded-For and X-Real-IP are set by whoever sends the request, so they are
// only honoured when TRUST_PROXY says a reverse proxy in front of us overwrites them.
// Otherwise any client could pick a fresh IP per request and never hit the limit.
func clientIP(r *http.Request) string {
	cfg := ctxkeys.Config(r.Context())
	if cfg != nil && cfg.TrustProxy {
		// Take the first IP in the list (the original client)
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}

		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	// Fallback to RemoteAddr without the port
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
