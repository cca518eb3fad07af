package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const fixedWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

const redisTimeout = 250 * time.Millisecond

// RedisLimiter counts requests in a fixed window shared by every replica.
// When Redis cannot answer, the decision is delegated to fallback.
type RedisLimiter struct {
	client   *redis.Client
	script   *redis.Script
	prefix   string
	limit    int
	window   time.Duration
	fallback Limiter
	logger   *zap.Logger
}

// NewRedisLimiter returns fallback directly when client is nil.
func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration, fallback Limiter, logger *zap.Logger) Limiter {
	if client == nil {
		return fallback
	}
	return &RedisLimiter{
		client:   client,
		script:   redis.NewScript(fixedWindowScript),
		prefix:   prefix,
		limit:    limit,
		window:   window,
		fallback: fallback,
		logger:   logger,
	}
}

// Allow runs the counter script for key.
func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	if key == "" || l.limit <= 0 || l.window <= 0 {
		return true
	}
	ttl := l.window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	allowed, err := l.script.Run(ctx, l.client, []string{l.prefix + key}, ttl, l.limit).Int64()
	if err != nil {
		l.logger.Warn("redis rate limit unavailable, using local limiter", zap.Error(err))
		if l.fallback == nil {
			return true
		}
		return l.fallback.Allow(ctx, key)
	}
	return allowed == 1
}
