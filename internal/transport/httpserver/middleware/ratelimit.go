package middleware

import (
	"net/http"
	"sync"
	"time"

	"rental-app-go/internal/config"
)

// RateLimiter applies a per-user sliding window. A zero MaxRequests
// disables limiting entirely.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string][]time.Time
	maxReqs   int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string][]time.Time),
		maxReqs: cfg.MaxRequests,
		window:  cfg.Window,
		now:     time.Now,
	}
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.maxReqs <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := r.RemoteAddr
		if user, ok := UserFromContext(r.Context()); ok {
			key = user.ID
		}

		if !l.allow(key) {
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(key string) bool {
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	// Requests only refresh the caller's own bucket, so keys of callers
	// that went quiet are reaped here at most once per window.
	if now.Sub(l.lastSweep) > l.window {
		l.sweep(cutoff)
		l.lastSweep = now
	}

	kept := l.buckets[key][:0]
	for _, t := range l.buckets[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.maxReqs {
		l.buckets[key] = kept
		return false
	}

	l.buckets[key] = append(kept, now)
	return true
}

func (l *RateLimiter) sweep(cutoff time.Time) {
	for key, stamps := range l.buckets {
		live := false
		for _, t := range stamps {
			if t.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.buckets, key)
		}
	}
}
