package middleware

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter hands every caller its own token bucket. Callers are keyed by
// actor id once Identity has run, by client IP otherwise.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	buckets sync.Map // string -> *rate.Limiter
}

// NewRateLimiter returns nil when perSecond is not positive; a nil limiter's
// Middleware lets every request through.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limit: rate.Limit(perSecond), burst: burst}
}

func (rl *RateLimiter) bucket(key string) *rate.Limiter {
	if b, ok := rl.buckets.Load(key); ok {
		return b.(*rate.Limiter)
	}
	b, _ := rl.buckets.LoadOrStore(key, rate.NewLimiter(rl.limit, rl.burst))
	return b.(*rate.Limiter)
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if caller, ok := GetCaller(c.Request.Context()); ok {
			key = "actor:" + strconv.FormatInt(caller.ActorID, 10)
		}

		b := rl.bucket(key)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		if !b.Allow() {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(b.Tokens())))
		c.Next()
	}
}
