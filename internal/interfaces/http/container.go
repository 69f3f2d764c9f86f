// Package http assembles the HTTP server: it wires repositories, services,
// use cases and handlers, and registers the routes.
package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/reelpop-inc/reelpop/internal/infrastructure/config"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/ratelimit"
	"github.com/reelpop-inc/reelpop/internal/interfaces/http/middleware"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers, and releases external connections on Shutdown.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	svcs  *allServices
	ucs   *allUseCases
	hdlrs *allHandlers

	authMiddleware *middleware.AuthMiddleware
	rateLimits     *ratelimit.Registry
}

// NewContainer wires the application. It fails only on configuration that
// cannot serve traffic, such as a production deployment without a provider key
// or with the placeholder token secret.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	if err := cfg.ValidateForServer(); err != nil {
		return nil, err
	}

	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	c.initInfrastructure(ctx)
	c.repos = newRepositories(db, log)

	svcs, err := c.newServices(ctx)
	if err != nil {
		c.Shutdown()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	c.svcs = svcs

	c.ucs = c.newUseCases()
	c.hdlrs = c.newHandlers()

	return c, nil
}

func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown closes the Redis client. The database is owned by the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
