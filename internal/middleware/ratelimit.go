// Package middleware holds the Fiber middleware shared by the HTTP server:
// structured request logging, tracing, metrics and redis-backed rate limiting.
package middleware

import (
	"context"
	"fmt"
	"os"
	"time"

	"recshelf/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy defines the behavior when the rate limit store (Redis) is unavailable.
type FailPolicy int

const (
	// FailOpen allows the request to proceed if Redis is unavailable.
	FailOpen FailPolicy = iota
	// FailClosed rejects the request with 503 if Redis is unavailable.
	FailClosed
)

// RateRule describes one named bucket: at most Limit hits per Window.
type RateRule struct {
	Name   string
	Limit  int
	Window time.Duration
	Policy FailPolicy
}

// rateLimitBypassed reports whether the current environment skips throttling.
func rateLimitBypassed() bool {
	switch os.Getenv("APP_ENV") {
	case "", "test", "development", "stress":
		return true
	}
	return false
}

// CheckRateLimit increments the counter for resource/id and reports whether
// the caller is still within limit. The window starts at the first hit.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	if rateLimitBypassed() {
		return true, nil
	}
	if rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return cnt <= int64(limit), nil
}

// RateLimit enforces rule per authenticated user, falling back to the remote IP.
func RateLimit(rdb *redis.Client, rule RateRule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := "ip:" + c.IP()
		if uid, ok := c.Locals("userID").(uint); ok {
			id = fmt.Sprintf("user:%d", uid)
		}

		resource := rule.Name
		if resource == "" {
			resource = c.Path()
		}

		allowed, err := CheckRateLimit(c.UserContext(), rdb, resource, id, rule.Limit, rule.Window)
		if err != nil {
			if rule.Policy == FailClosed {
				Logger.WarnContext(c.UserContext(), "rate limit store unavailable",
					"resource", resource, "error", err)
				return models.RespondWithError(c, fiber.StatusServiceUnavailable,
					models.NewInternalError("Rate limit unavailable"))
			}
			return c.Next()
		}

		if !allowed {
			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", int(rule.Window.Seconds())))
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				models.NewRateLimitError("Rate limit exceeded"))
		}
		return c.Next()
	}
}
