package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/barberflow/booking-api/internal/httperr"
)

// RateLimiter keeps one token bucket per caller. Keys are the authenticated
// user id when available, the client IP otherwise.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*callerLimiter

	limit rate.Limit
	burst int
}

type callerLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func NewRateLimiter(perMinute, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*callerLimiter),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
	}

	go rl.janitor(5 * time.Minute)
	return rl
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if id, ok := c.Get(ContextUserID); ok {
			key = "u:" + strconv.FormatInt(id.(int64), 10)
		}

		if !rl.allow(key) {
			httperr.TooManyRequests(c, "rate_limited", "Too many requests, slow down.")
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[key]
	if !ok {
		cl = &callerLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastAccess = time.Now()

	return cl.limiter.Allow()
}

func (rl *RateLimiter) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-every)

		rl.mu.Lock()
		for key, cl := range rl.limiters {
			if cl.lastAccess.Before(cutoff) {
				delete(rl.limiters, key)
			}
		}
		rl.mu.Unlock()
	}
}
