package middleware

import (
	"sync"
	"time"

	"sales-insights/internal/errors"
	"sales-insights/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	defaultRequestsPerSecond = 5
	defaultBurstSize         = 10

	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex

	cleanupOnce sync.Once
)

// RateLimiter limits requests per client IP with the default budget. The
// dashboard is read-mostly; a small per-IP budget keeps a misbehaving poller
// from monopolizing snapshot recomputes.
func RateLimiter() echo.MiddlewareFunc {
	return RateLimiterWithConfig(defaultRequestsPerSecond, defaultBurstSize)
}

// RateLimiterWithConfig creates a per-IP rate limiter with the given refill
// rate and burst size
func RateLimiterWithConfig(rps int, burst int) echo.MiddlewareFunc {
	cleanupOnce.Do(func() { go evictIdleVisitors() })

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limiter := limiterFor(clientIP(c), rps, burst)
			if !limiter.Allow() {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}

			return next(c)
		}
	}
}

func limiterFor(ip string, rps, burst int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, ok := visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
		visitors[ip] = v
	}
	v.lastSeen = time.Now()

	return v.limiter
}

func clientIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Request().Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.RealIP()
}

func evictIdleVisitors() {
	for {
		time.Sleep(cleanupInterval)

		mu.Lock()
		for ip, v := range visitors {
			if time.Since(v.lastSeen) > visitorTTL {
				delete(visitors, ip)
			}
		}
		mu.Unlock()
	}
}
