package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterEntry holds a rate limiter with last used timestamp
type limiterEntry struct {
	limiter  *rate.Limiter
	lastUsed time.Time
}

// keyRateLimiter manages per-key rate limiters; idle keys are evicted
type keyRateLimiter struct {
	limiters map[string]*limiterEntry
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	idle     time.Duration
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newKeyRateLimiter(limit rate.Limit, burst int, idle time.Duration) *keyRateLimiter {
	k := &keyRateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    limit,
		burst:    burst,
		idle:     idle,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	go k.cleanupLoop()
	return k
}

func (k *keyRateLimiter) allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	entry, ok := k.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(k.limit, k.burst)}
		k.limiters[key] = entry
	}
	entry.lastUsed = time.Now()
	return entry.limiter.Allow()
}

func (k *keyRateLimiter) cleanupLoop() {
	defer close(k.done)
	ticker := time.NewTicker(k.idle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			k.cleanup()
		case <-k.stopCh:
			return
		}
	}
}

// cleanup removes entries idle for longer than k.idle
func (k *keyRateLimiter) cleanup() {
	k.mu.Lock()
	defer k.mu.Unlock()

	cutoff := time.Now().Add(-k.idle)
	for key, entry := range k.limiters {
		if entry.lastUsed.Before(cutoff) {
			delete(k.limiters, key)
		}
	}
}

// Stop terminates the cleanup goroutine and waits for it to exit
func (k *keyRateLimiter) Stop() {
	k.stopOnce.Do(func() { close(k.stopCh) })
	<-k.done
}

// RateLimitConfig defines configuration for the rate limiting middleware
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// NewIPRateLimitingMiddleware creates a Gin middleware that enforces per-IP
// limits. Used on the credential endpoints to slow down password guessing.
// The returned stop function ends the idle-key sweeper; call it on shutdown.
func NewIPRateLimitingMiddleware(cfg RateLimitConfig) (gin.HandlerFunc, func()) {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerMinute
	}

	limit := rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	limiter := newKeyRateLimiter(limit, cfg.Burst, 10*time.Minute)

	handler := func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many attempts. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
	return handler, limiter.Stop
}

// AuthRateLimitMiddleware limits login and registration attempts per IP
func AuthRateLimitMiddleware(perMinute int) (gin.HandlerFunc, func()) {
	return NewIPRateLimitingMiddleware(RateLimitConfig{
		RequestsPerMinute: perMinute,
		Burst:             perMinute,
	})
}
