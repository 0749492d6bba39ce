package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RealSujal/community-app/internal/error/code"
	"github.com/RealSujal/community-app/internal/error/response"
)

// TokenBucket is a simple token bucket limiter
type TokenBucket struct {
	rate       float64 // tokens added per second
	capacity   int
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a full bucket
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// Allow takes one token if available
func (tb *TokenBucket) Allow() bool {
	return tb.allowAt(time.Now())
}

func (tb *TokenBucket) allowAt(now time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	elapsed := now.Sub(tb.lastRefill).Seconds()
	if elapsed > 0 {
		tb.tokens += elapsed * tb.rate
		if tb.tokens > float64(tb.capacity) {
			tb.tokens = float64(tb.capacity)
		}
		tb.lastRefill = now
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

func (tb *TokenBucket) idleSince(now time.Time) time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return now.Sub(tb.lastRefill)
}

// RateLimiterConfig configures RateLimiter
type RateLimiterConfig struct {
	Rate       float64                   // requests per second
	Burst      int                       // bucket capacity
	ExpiryTime time.Duration             // idle buckets older than this are dropped
	KeyFunc    func(*gin.Context) string // defaults to the client IP
}

// DefaultRateLimiterConfig allows one request per second with bursts of five
var DefaultRateLimiterConfig = RateLimiterConfig{
	Rate:       1,
	Burst:      5,
	ExpiryTime: time.Hour,
}

type limiterStore struct {
	mu       sync.Mutex
	buckets  map[string]*TokenBucket
	cfg      RateLimiterConfig
	lastScan time.Time
}

func (s *limiterStore) get(key string, now time.Time) *TokenBucket {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.ExpiryTime > 0 && now.Sub(s.lastScan) > s.cfg.ExpiryTime {
		for k, b := range s.buckets {
			if b.idleSince(now) > s.cfg.ExpiryTime {
				delete(s.buckets, k)
			}
		}
		s.lastScan = now
	}

	b, ok := s.buckets[key]
	if !ok {
		b = NewTokenBucket(s.cfg.Rate, s.cfg.Burst)
		s.buckets[key] = b
	}
	return b
}

// RateLimiter limits requests per key. Each call owns its own buckets.
func RateLimiter(config ...RateLimiterConfig) gin.HandlerFunc {
	cfg := DefaultRateLimiterConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRateLimiterConfig.Rate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateLimiterConfig.Burst
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	store := &limiterStore{
		buckets:  make(map[string]*TokenBucket),
		cfg:      cfg,
		lastScan: time.Now(),
	}

	return func(c *gin.Context) {
		if !store.get(cfg.KeyFunc(c), time.Now()).Allow() {
			response.Fail(c, code.ErrTooManyRequests, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// IPRateLimiter limits requests per client IP
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:       rate,
		Burst:      burst,
		ExpiryTime: DefaultRateLimiterConfig.ExpiryTime,
	})
}
