package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const window = time.Second

// RedisLimiter counts requests per key in fixed one-second windows so that
// several front end instances share one budget.
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, limit int) *RedisLimiter {
	return &RedisLimiter{client: client, limit: int64(limit), now: time.Now}
}

func buildKey(key string, slot int64) string {
	return fmt.Sprintf("ratelimit:%s:%d", key, slot)
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	slot := l.now().Unix()
	k := buildKey(key, slot)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, 2*window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("count request for %s: %w", key, err)
	}

	return incr.Val() <= l.limit, nil
}

// Ping connectivity
func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}
