package middleware

import (
	"net/http"
	"sync"
	"time"

	"logichain-web/internal/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter holds one token bucket per key. Idle buckets are dropped
// after ttl; the sweep runs at most once per ttl.
type KeyedLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
	entries   map[string]*limBucket
}

func NewKeyedLimiter(limit rate.Limit, burst int, ttl time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		limit:   limit,
		burst:   burst,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*limBucket),
	}
}

// PerMinute allows n events per minute with a burst of n.
func PerMinute(n int) *KeyedLimiter {
	return NewKeyedLimiter(rate.Every(time.Minute/time.Duration(n)), n, 10*time.Minute)
}

func (l *KeyedLimiter) Allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.entries[key]
	if b == nil {
		b = &limBucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = b
	}
	b.lastSeen = now

	if now.Sub(l.lastSweep) >= l.ttl {
		l.sweep(now)
	}
	return b.lim.AllowN(now, 1)
}

func (l *KeyedLimiter) sweep(now time.Time) {
	for k, v := range l.entries {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.entries, k)
		}
	}
	l.lastSweep = now
}

// RateLimit rejects requests of a client IP once its bucket is empty.
func RateLimit(l *KeyedLimiter, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		if m != nil {
			m.RateLimited.Inc()
		}
		c.Header("Retry-After", "60")
		c.String(http.StatusTooManyRequests, "too many attempts, try again in a minute")
		c.Abort()
	}
}
