package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reelpop-inc/reelpop/internal/shared/id"
)

// RedisSlidingLimiter keeps one sorted set of request timestamps per key and
// counts the entries inside the trailing window.
type RedisSlidingLimiter struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisSlidingLimiter(client *redis.Client) *RedisSlidingLimiter {
	return &RedisSlidingLimiter{client: client, now: time.Now}
}

var _ RateLimiter = (*RedisSlidingLimiter)(nil)

func (l *RedisSlidingLimiter) Allow(ctx context.Context, key string, rule Rule) (*Decision, error) {
	now := l.now()
	redisKey := l.getKey(key, rule.Window)
	windowStart := now.Add(-rule.Window).UnixNano()
	nowNano := now.UnixNano()

	suffix, err := id.Generate(6)
	if err != nil {
		return nil, err
	}

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: id.Join(strconv.FormatInt(nowNano, 10), suffix)})
	oldest := pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
	pipe.Expire(ctx, redisKey, rule.Window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	count := zcard.Val() + 1

	var retryAfter time.Duration
	if entries := oldest.Val(); len(entries) > 0 {
		oldestAt := time.Unix(0, int64(entries[0].Score))
		retryAfter = oldestAt.Add(rule.Window).Sub(now).Round(time.Second)
	}
	return decide(count, rule, retryAfter), nil
}

func (l *RedisSlidingLimiter) getKey(identifier string, window time.Duration) string {
	return fmt.Sprintf("ratelimit:%s:%s", identifier, window.String())
}
