package http

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reelpop-inc/reelpop/internal/application/billing/provider"
	genUsecases "github.com/reelpop-inc/reelpop/internal/application/generation/usecases"
	"github.com/reelpop-inc/reelpop/internal/application/generation/gateway"
	"github.com/reelpop-inc/reelpop/internal/application/usage"
	"github.com/reelpop-inc/reelpop/internal/domain/generation"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/auth"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/email"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/kvstore"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/payment"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/ratelimit"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/seedance"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/storage"
	"github.com/reelpop-inc/reelpop/internal/interfaces/http/middleware"
	"github.com/reelpop-inc/reelpop/internal/shared/db"
)

const (
	redisPingTimeout = 3 * time.Second
	kvKeyPrefix      = "reelpop:"
)

// allServices holds application services and provider adapters shared by
// several use cases.
type allServices struct {
	policy     *usage.PlanPolicy
	usage      *usage.Service
	txManager  *db.TransactionManager
	gateway    gateway.Gateway
	assets     *generation.AssetPolicy
	fetcher    genUsecases.AssetFetcher
	storage    genUsecases.VideoStorage
	stripe     *payment.StripeClient
	webhooks   *payment.WebhookDecoder
	notifier   provider.DunningNotifier
	kv         kvstore.Store
	tokenCheck *auth.TokenVerifier
}

// initInfrastructure connects Redis and builds the kv store, rate limits and
// auth middleware. Without Redis every store falls back to process memory.
func (c *Container) initInfrastructure(ctx context.Context) {
	c.redis = initRedis(ctx, c)

	var limiter ratelimit.RateLimiter
	var kv kvstore.Store
	if c.redis != nil {
		kv = kvstore.NewRedisStore(c.redis, kvKeyPrefix)
		limiter = ratelimit.NewRedisSlidingLimiter(c.redis)
	} else {
		kv = kvstore.NewMemoryStore(kvstore.DefaultMemorySize)
		limiter = ratelimit.NewFixedWindowLimiter(kv)
	}

	c.svcs = &allServices{kv: kv}
	c.rateLimits = ratelimit.NewRegistry(c.cfg.RateLimit, limiter, c.log.Named("ratelimit"))

	c.svcs.tokenCheck = auth.NewTokenVerifier(c.cfg.Auth)
	c.authMiddleware = middleware.NewAuthMiddleware(c.svcs.tokenCheck, c.log.Named("auth"))
}

// initRedis returns nil when Redis is not configured or unreachable.
func initRedis(ctx context.Context, c *Container) *redis.Client {
	if !c.cfg.Redis.Enabled() {
		if c.cfg.Server.IsProduction() {
			c.log.Warnw("redis not configured, rate limits and mock tasks are per-process")
		}
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.cfg.Redis.GetAddr(),
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		c.log.Warnw("failed to connect to redis, falling back to in-memory stores",
			"addr", c.cfg.Redis.GetAddr(),
			"error", err,
		)
		_ = client.Close()
		return nil
	}
	c.log.Infow("redis connection established successfully")
	return client
}

func (c *Container) newServices(ctx context.Context) (*allServices, error) {
	svcs := c.svcs
	cfg := c.cfg

	svcs.policy = usage.NewPlanPolicy(cfg.Plans, cfg.Stripe)
	svcs.usage = usage.NewService(c.repos.subscriptionRepo, c.repos.usageRepo, svcs.policy, c.log.Named("usage"))
	svcs.txManager = db.NewTransactionManager(c.db)

	gw, err := seedance.NewGateway(cfg.Generation, cfg.Server.IsProduction(), svcs.kv, c.log.Named("seedance"))
	if err != nil {
		return nil, err
	}
	svcs.gateway = gw

	hosts := append([]string{}, cfg.Generation.AllowedHosts...)
	if _, ok := gw.(*seedance.MockGateway); ok {
		hosts = append(hosts, seedance.MockVideoHost)
	}
	svcs.assets = generation.NewAssetPolicy(hosts)
	svcs.fetcher = storage.NewHTTPAssetFetcher(time.Duration(cfg.Generation.DownloadTimeout) * time.Second)

	if cfg.Storage.Enabled() {
		s3, err := storage.NewS3VideoStorage(ctx, cfg.Storage, c.log.Named("storage"))
		if err != nil {
			return nil, err
		}
		svcs.storage = s3
	} else {
		c.log.Warnw("storage bucket not configured, generated videos are served from provider URLs")
		svcs.storage = storage.DisabledStorage{}
	}

	svcs.stripe = payment.NewStripeClient(cfg.Stripe.SecretKey, nil, c.log.Named("stripe"))
	svcs.webhooks = payment.NewWebhookDecoder(cfg.Stripe.WebhookSecret)
	if cfg.Stripe.WebhookSecret == "" {
		c.log.Warnw("stripe webhook secret not configured, all webhook deliveries will be rejected")
	}

	if cfg.Email.Enabled() {
		svcs.notifier = email.NewSMTPDunningNotifier(cfg.Email, cfg.Server.SiteURL)
	} else {
		c.log.Infow("email not configured, dunning emails disabled")
	}

	return svcs, nil
}
