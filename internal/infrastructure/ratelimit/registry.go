package ratelimit

import (
	"context"
	"time"

	"github.com/reelpop-inc/reelpop/internal/shared/config"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

type Category string

const (
	CategoryGenerate Category = "generate"
	CategoryUpload   Category = "upload"
	CategoryCheckout Category = "checkout"
	CategoryGeneral  Category = "general"
)

// Registry binds each request category to its rule. It is built once at
// startup and shared by all handlers.
type Registry struct {
	limiter RateLimiter
	rules   map[Category]Rule
	enabled bool
	logger  logger.Interface
}

func NewRegistry(cfg config.RateLimitConfig, limiter RateLimiter, logger logger.Interface) *Registry {
	return &Registry{
		limiter: limiter,
		rules: map[Category]Rule{
			CategoryGenerate: ruleFrom(cfg.Generate),
			CategoryUpload:   ruleFrom(cfg.Upload),
			CategoryCheckout: ruleFrom(cfg.Checkout),
			CategoryGeneral:  ruleFrom(cfg.General),
		},
		enabled: cfg.Enabled,
		logger:  logger,
	}
}

// Rule returns the rule for category, falling back to the general rule.
func (r *Registry) Rule(category Category) Rule {
	if rule, ok := r.rules[category]; ok {
		return rule
	}
	return r.rules[CategoryGeneral]
}

// Check counts one request for clientKey under category. Limiter failures
// are logged and the request is allowed.
func (r *Registry) Check(ctx context.Context, category Category, clientKey string) *Decision {
	rule := r.Rule(category)
	if !r.enabled || rule.Limit <= 0 {
		return &Decision{Allowed: true, Limit: rule.Limit, Remaining: rule.Limit}
	}

	decision, err := r.limiter.Allow(ctx, string(category)+":"+clientKey, rule)
	if err != nil {
		r.logger.Warnw("rate limiter unavailable, allowing request",
			"category", category,
			"error", err,
		)
		return &Decision{Allowed: true, Limit: rule.Limit, Remaining: rule.Limit}
	}
	return decision
}

func ruleFrom(c config.RateLimitRule) Rule {
	window := time.Duration(c.Window) * time.Second
	if window <= 0 {
		window = time.Minute
	}
	return Rule{Limit: c.Limit, Window: window}
}
