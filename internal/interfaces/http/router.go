package http

import (
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/reelpop-inc/reelpop/internal/interfaces/http/middleware"
	"github.com/reelpop-inc/reelpop/internal/interfaces/http/routes"

	_ "github.com/reelpop-inc/reelpop/docs"
)

// SetupRoutes configures all HTTP routes.
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.hdlrs.health.Check)
	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := c.engine.Group("/api")

	routes.SetupGenerationRoutes(api, &routes.GenerationRouteConfig{
		GenerationHandler: c.hdlrs.generation,
		ProjectHandler:    c.hdlrs.project,
		AuthMiddleware:    c.authMiddleware,
		RateLimits:        c.rateLimits,
	})

	routes.SetupBillingRoutes(api, &routes.BillingRouteConfig{
		SubscriptionHandler: c.hdlrs.subscription,
		StripeHandler:       c.hdlrs.stripe,
		AuthMiddleware:      c.authMiddleware,
		RateLimits:          c.rateLimits,
	})
}
