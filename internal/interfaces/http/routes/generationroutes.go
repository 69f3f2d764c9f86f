// Package routes binds handlers and middleware to URL groups.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/reelpop-inc/reelpop/internal/infrastructure/ratelimit"
	"github.com/reelpop-inc/reelpop/internal/interfaces/http/handlers"
	"github.com/reelpop-inc/reelpop/internal/interfaces/http/middleware"
)

// GenerationRouteConfig holds dependencies for generation and project routes.
type GenerationRouteConfig struct {
	GenerationHandler *handlers.GenerationHandler
	ProjectHandler    *handlers.ProjectHandler
	AuthMiddleware    *middleware.AuthMiddleware
	RateLimits        *ratelimit.Registry
}

func SetupGenerationRoutes(api *gin.RouterGroup, cfg *GenerationRouteConfig) {
	generate := api.Group("/generate")
	generate.Use(cfg.AuthMiddleware.RequireAuth())
	{
		generate.POST("", middleware.RateLimit(cfg.RateLimits, ratelimit.CategoryGenerate), cfg.GenerationHandler.Submit)
		generate.GET("/:taskId", middleware.RateLimit(cfg.RateLimits, ratelimit.CategoryGeneral), cfg.GenerationHandler.GetStatus)
	}

	projects := api.Group("/projects")
	projects.Use(cfg.AuthMiddleware.RequireAuth(), middleware.RateLimit(cfg.RateLimits, ratelimit.CategoryGeneral))
	{
		projects.GET("", cfg.ProjectHandler.List)
		projects.GET("/:id", cfg.ProjectHandler.Get)
	}
}
