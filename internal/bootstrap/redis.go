package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/error7buddy/KiLagbe.Com/config"
	"github.com/error7buddy/KiLagbe.Com/internal/api/http/middleware"
)

func OpenRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opt)

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

// NewLimiter picks the rate limiter for cfg. It returns a nil limiter when rate
// limiting is disabled and falls back to in-process buckets if Redis is not
// reachable. The returned client, when non-nil, must be closed by the caller.
func NewLimiter(ctx context.Context, cfg config.RateLimitConfig, log logrus.FieldLogger) (middleware.Limiter, *redis.Client) {
	if !cfg.Enabled {
		return nil, nil
	}

	if cfg.RedisURL != "" {
		rdb, err := OpenRedis(ctx, cfg.RedisURL)
		if err == nil {
			log.Info("rate limiting backed by redis")
			return middleware.NewRedisLimiter(rdb, cfg.Max, cfg.Window), rdb
		}
		log.WithError(err).Warn("redis unavailable, using in-process rate limiting")
	}

	return middleware.NewLocalLimiter(cfg.Max, cfg.Window), nil
}
