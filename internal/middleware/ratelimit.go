package middleware

import (
	"strconv"
	"sync"
	"time"

	"vfx-dashboard/internal/common/api"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int
	// Window is the time window for rate limiting
	Window time.Duration
	// Burst allows for temporary bursts above the rate limit
	Burst int
}

// KeyExtractor returns the bucket a request is counted against.
type KeyExtractor func(*fiber.Ctx) string

// IPKeyExtractor keys requests by client IP.
func IPKeyExtractor(c *fiber.Ctx) string {
	return c.IP()
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key and forgets keys idle for
// longer than idleTTL.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	window   time.Duration
	idleTTL  time.Duration
	lastGC   time.Time
	now      func() time.Time
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerWindow
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:    cfg.Burst,
		window:   cfg.Window,
		idleTTL:  3 * cfg.Window,
		now:      time.Now,
	}
}

// Allow consumes a token for key and reports whether the request may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastGC) > rl.idleTTL {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) > rl.idleTTL {
				delete(rl.visitors, k)
			}
		}
		rl.lastGC = now
	}

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Handler returns a fiber middleware enforcing the limiter.
func (rl *RateLimiter) Handler(keyFn KeyExtractor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl.Allow(keyFn(c)) {
			return c.Next()
		}
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(rl.window.Seconds())))
		return api.Fail(c, fiber.StatusTooManyRequests, "Too many requests, please try again later")
	}
}
