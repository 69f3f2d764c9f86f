package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/reelpop-inc/reelpop/internal/infrastructure/kvstore"
)

// FixedWindowLimiter counts requests per key in windows that start on the
// key's first request.
type FixedWindowLimiter struct {
	store kvstore.Store
}

func NewFixedWindowLimiter(store kvstore.Store) *FixedWindowLimiter {
	return &FixedWindowLimiter{store: store}
}

var _ RateLimiter = (*FixedWindowLimiter)(nil)

func (l *FixedWindowLimiter) Allow(ctx context.Context, key string, rule Rule) (*Decision, error) {
	count, ttl, err := l.store.IncrWindow(ctx, "ratelimit:"+key, rule.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to count request: %w", err)
	}
	return decide(count, rule, ttl.Round(time.Second)), nil
}
