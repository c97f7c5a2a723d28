package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"odyssey/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy decides what a create route does when Redis cannot be reached.
type FailPolicy int

const (
	// FailOpen lets the upload through.
	FailOpen FailPolicy = iota
	// FailClosed answers 503.
	FailClosed
)

var errNoRedis = errors.New("rate limit store not configured")

// RateLimitBypassed reports whether env runs without the Redis counters.
// An unset env counts as development.
func RateLimitBypassed(env string) bool {
	switch env {
	case "", "test", "development", "stress":
		return true
	}
	return false
}

// CreateLimiter counts creations per client IP in fixed Redis windows.
type CreateLimiter struct {
	rdb    *redis.Client
	env    string
	policy FailPolicy
}

// NewCreateLimiter builds a limiter for the configured env. rdb may be nil.
func NewCreateLimiter(rdb *redis.Client, env string, policy FailPolicy) *CreateLimiter {
	return &CreateLimiter{rdb: rdb, env: env, policy: policy}
}

// Allow increments the counter for resource and client and reports whether
// the count is still within limit for the current window.
func (l *CreateLimiter) Allow(ctx context.Context, resource, client string, limit int, window time.Duration) (bool, error) {
	if RateLimitBypassed(l.env) {
		return true, nil
	}
	if l.rdb == nil {
		return false, errNoRedis
	}

	key := fmt.Sprintf("rl:%s:%s", resource, client)
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// Handler guards a route named resource with limit requests per window.
func (l *CreateLimiter) Handler(resource string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, err := l.Allow(c.UserContext(), resource, "ip:"+c.IP(), limit, window)
		if err != nil {
			Logger.WarnContext(c.UserContext(), "rate limit store unavailable",
				"resource", resource, "env", l.env, "fail_closed", l.policy == FailClosed, "error", err)
			if l.policy == FailClosed {
				return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{Error: "rate limit unavailable"})
			}
			return c.Next()
		}
		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{Error: "rate limit exceeded"})
		}
		return c.Next()
	}
}
