package http

import (
	"context"

	"github.com/reelpop-inc/reelpop/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	health       *handlers.HealthHandler
	generation   *handlers.GenerationHandler
	project      *handlers.ProjectHandler
	subscription *handlers.SubscriptionHandler
	stripe       *handlers.StripeHandler
}

func (c *Container) newHandlers() *allHandlers {
	u := c.ucs

	return &allHandlers{
		health:       handlers.NewHealthHandler(c.pingDatabase, c.log),
		generation:   handlers.NewGenerationHandler(u.submitGeneration, u.getGenerationStatus, c.log),
		project:      handlers.NewProjectHandler(u.listProjects, u.getProject, c.log),
		subscription: handlers.NewSubscriptionHandler(c.svcs.usage, c.log),
		stripe:       handlers.NewStripeHandler(u.createCheckoutSession, u.createPortalSession, u.handleStripeWebhook, c.log),
	}
}

func (c *Container) pingDatabase(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
