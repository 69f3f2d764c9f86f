package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelpop-inc/reelpop/internal/infrastructure/kvstore"
	"github.com/reelpop-inc/reelpop/internal/shared/config"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func testConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:  true,
		Generate: config.RateLimitRule{Limit: 5, Window: 60},
		Upload:   config.RateLimitRule{Limit: 15, Window: 60},
		Checkout: config.RateLimitRule{Limit: 10, Window: 60},
		General:  config.RateLimitRule{Limit: 60, Window: 60},
	}
}

func TestFixedWindowLimiter(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := NewFixedWindowLimiter(kvstore.NewRedisStore(client, ""))
	rule := Rule{Limit: 5, Window: time.Minute}
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		d, err := limiter.Allow(ctx, "generate:1.2.3.4", rule)
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 4-i, d.Remaining)
	}

	d, err := limiter.Allow(ctx, "generate:1.2.3.4", rule)
	require.NoError(t, err)
	assert.False(t, d.Allowed, "6th request should be denied")
	assert.Zero(t, d.Remaining)
	assert.Greater(t, d.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, d.RetryAfter, time.Minute)

	d, err = limiter.Allow(ctx, "generate:5.6.7.8", rule)
	require.NoError(t, err)
	assert.True(t, d.Allowed, "other clients are unaffected")

	mr.FastForward(61 * time.Second)
	d, err = limiter.Allow(ctx, "generate:1.2.3.4", rule)
	require.NoError(t, err)
	assert.True(t, d.Allowed, "window resets")
}

func TestFixedWindowLimiter_Memory(t *testing.T) {
	limiter := NewFixedWindowLimiter(kvstore.NewMemoryStore(100))
	rule := Rule{Limit: 2, Window: time.Minute}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		d, err := limiter.Allow(ctx, "k", rule)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}
	d, err := limiter.Allow(ctx, "k", rule)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Minute, d.RetryAfter)
}

func TestRedisSlidingLimiter(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisSlidingLimiter(client)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	rule := Rule{Limit: 3, Window: time.Minute}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := limiter.Allow(ctx, "k", rule)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		now = now.Add(10 * time.Second)
	}

	d, err := limiter.Allow(ctx, "k", rule)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 30*time.Second, d.RetryAfter)

	now = now.Add(35 * time.Second)
	d, err = limiter.Allow(ctx, "k", rule)
	require.NoError(t, err)
	assert.False(t, d.Allowed, "denied requests still occupy the window")

	now = now.Add(time.Minute)
	d, err = limiter.Allow(ctx, "k", rule)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, Rule) (*Decision, error) {
	return nil, errors.New("store down")
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("applies category presets", func(t *testing.T) {
		reg := NewRegistry(testConfig(), NewFixedWindowLimiter(kvstore.NewMemoryStore(100)), logger.NewNop())

		for i := 0; i < 5; i++ {
			assert.True(t, reg.Check(ctx, CategoryGenerate, "1.2.3.4").Allowed)
		}
		d := reg.Check(ctx, CategoryGenerate, "1.2.3.4")
		assert.False(t, d.Allowed)
		assert.Equal(t, 5, d.Limit)

		assert.True(t, reg.Check(ctx, CategoryGeneral, "1.2.3.4").Allowed, "categories count separately")
		assert.Equal(t, 60, reg.Rule(Category("unknown")).Limit)
		assert.Equal(t, time.Minute, reg.Rule(CategoryCheckout).Window)
	})

	t.Run("fails open", func(t *testing.T) {
		reg := NewRegistry(testConfig(), failingLimiter{}, logger.NewNop())
		d := reg.Check(ctx, CategoryGenerate, "1.2.3.4")
		assert.True(t, d.Allowed)
	})

	t.Run("disabled allows everything", func(t *testing.T) {
		cfg := testConfig()
		cfg.Enabled = false
		reg := NewRegistry(cfg, failingLimiter{}, logger.NewNop())
		assert.True(t, reg.Check(ctx, CategoryGenerate, "x").Allowed)
	})
}
