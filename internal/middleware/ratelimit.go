package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	appErrors "github.com/noah-isme/batch-intake-api/pkg/errors"
	"github.com/noah-isme/batch-intake-api/pkg/response"
)

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPLimiter rate-limits requests per client IP.
type IPLimiter struct {
	mu        sync.Mutex
	m         map[string]*clientLimiter
	r         rate.Limit
	b         int
	now       func() time.Time
	lastSweep time.Time
}

// NewIPLimiter allows perMinute requests per client with the given burst.
// A non-positive perMinute disables limiting.
func NewIPLimiter(perMinute, burst int) *IPLimiter {
	if burst <= 0 {
		burst = 1
	}
	r := rate.Inf
	if perMinute > 0 {
		r = rate.Limit(float64(perMinute) / 60)
	}
	return &IPLimiter{
		m:   make(map[string]*clientLimiter),
		r:   r,
		b:   burst,
		now: time.Now,
	}
}

// Allow reports whether the client identified by ip may proceed now.
func (l *IPLimiter) Allow(ip string) bool {
	return l.limiterFor(ip).AllowN(l.now(), 1)
}

func (l *IPLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > time.Minute {
		for key, entry := range l.m {
			if now.Sub(entry.lastSeen) > limiterIdleTTL {
				delete(l.m, key)
			}
		}
		l.lastSweep = now
	}

	if entry, ok := l.m[ip]; ok {
		entry.lastSeen = now
		return entry.limiter
	}
	lim := rate.NewLimiter(l.r, l.b)
	l.m[ip] = &clientLimiter{limiter: lim, lastSeen: now}
	return lim
}

// RateLimit rejects clients that exceed the limiter with TOO_MANY_REQUESTS.
func RateLimit(limiter *IPLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limiter.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		c.Header("Retry-After", "60")
		response.Error(c, appErrors.Clone(appErrors.ErrTooManyRequests, "too many submissions, please wait a moment"))
		c.Abort()
	}
}
