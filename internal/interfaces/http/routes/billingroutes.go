package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/reelpop-inc/reelpop/internal/infrastructure/ratelimit"
	"github.com/reelpop-inc/reelpop/internal/interfaces/http/handlers"
	"github.com/reelpop-inc/reelpop/internal/interfaces/http/middleware"
)

// BillingRouteConfig holds dependencies for subscription and Stripe routes.
type BillingRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
	StripeHandler       *handlers.StripeHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimits          *ratelimit.Registry
}

func SetupBillingRoutes(api *gin.RouterGroup, cfg *BillingRouteConfig) {
	requireAuth := cfg.AuthMiddleware.RequireAuth()

	api.GET("/subscription", requireAuth, cfg.SubscriptionHandler.Get)
	api.GET("/subscription/limit", requireAuth, cfg.SubscriptionHandler.Limit)
	api.POST("/auth/ensure-subscription", requireAuth, cfg.SubscriptionHandler.Ensure)

	stripe := api.Group("/stripe")
	{
		// Stripe signs the raw body, so the webhook takes no auth or rate limit.
		stripe.POST("/webhook", cfg.StripeHandler.Webhook)

		stripe.POST("/checkout", requireAuth, middleware.RateLimit(cfg.RateLimits, ratelimit.CategoryCheckout), cfg.StripeHandler.Checkout)
		stripe.POST("/portal", requireAuth, middleware.RateLimit(cfg.RateLimits, ratelimit.CategoryCheckout), cfg.StripeHandler.Portal)
	}
}
