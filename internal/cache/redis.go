// Package cache owns the Redis connection used for token revocation and
// rate limiting.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"recshelf/internal/middleware"

	"github.com/redis/go-redis/v9"
)

type metricsHook struct{}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// Options parses a redis:// URL or a bare host:port address.
func Options(addr string) (*redis.Options, error) {
	if strings.Contains(addr, "://") {
		return redis.ParseURL(addr)
	}
	return &redis.Options{Addr: addr}, nil
}

// InitRedis connects to addr and returns nil when Redis is not configured or
// unreachable; callers treat a nil client as "feature off".
func InitRedis(ctx context.Context, addr string) *redis.Client {
	if strings.TrimSpace(addr) == "" {
		middleware.Logger.Info("redis not configured, token revocation and rate limiting disabled")
		return nil
	}

	opts, err := Options(addr)
	if err != nil {
		middleware.Logger.Warn("invalid REDIS_URL, continuing without redis", "error", err)
		return nil
	}

	client := redis.NewClient(opts)
	client.AddHook(metricsHook{})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		middleware.Logger.Warn("redis unreachable, continuing without redis", "addr", opts.Addr, "error", err)
		_ = client.Close()
		return nil
	}
	middleware.Logger.Info("redis connected", "addr", opts.Addr)
	return client
}
