// Package ratelimit implements per-key request ceilings over a shared store.
package ratelimit

import (
	"context"
	"time"
)

// Rule allows Limit requests per Window.
type Rule struct {
	Limit  int
	Window time.Duration
}

// Decision is the outcome of one Allow call. RetryAfter is only meaningful
// when the request was denied.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, rule Rule) (*Decision, error)
}

func decide(count int64, rule Rule, retryAfter time.Duration) *Decision {
	remaining := rule.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	d := &Decision{
		Allowed:   count <= int64(rule.Limit),
		Limit:     rule.Limit,
		Remaining: remaining,
	}
	if !d.Allowed {
		if retryAfter <= 0 {
			retryAfter = time.Second
		}
		d.RetryAfter = retryAfter
	}
	return d
}
