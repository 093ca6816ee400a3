package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Limiter enforces a sliding-window request limit per client key. Used
// to slow brute-force attempts on the auth endpoints.
type Limiter struct {
	maxRequests int
	window      time.Duration
	enabled     bool

	mu      sync.Mutex
	windows map[string][]time.Time
}

// NewLimiter creates a limiter allowing maxRequests per window per key.
func NewLimiter(maxRequests int, window time.Duration, enabled bool) *Limiter {
	return &Limiter{
		maxRequests: maxRequests,
		window:      window,
		enabled:     enabled,
		windows:     make(map[string][]time.Time),
	}
}

// Allow reports whether a request from key is within its limit, and
// records it when it is.
func (l *Limiter) Allow(key string) bool {
	if !l.enabled {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	kept := make([]time.Time, 0, len(l.windows[key]))
	for _, t := range l.windows[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.maxRequests {
		l.windows[key] = kept
		return false
	}

	l.windows[key] = append(kept, now)
	return true
}

// Middleware rejects over-limit requests keyed by client IP.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
