package http

import (
	billingUsecases "github.com/reelpop-inc/reelpop/internal/application/billing/usecases"
	genUsecases "github.com/reelpop-inc/reelpop/internal/application/generation/usecases"
)

// allUseCases holds all use case instances.
type allUseCases struct {
	submitGeneration    *genUsecases.SubmitGenerationUseCase
	getGenerationStatus *genUsecases.GetGenerationStatusUseCase
	listProjects        *genUsecases.ListProjectsUseCase
	getProject          *genUsecases.GetProjectUseCase

	handleStripeWebhook   *billingUsecases.HandleStripeWebhookUseCase
	createCheckoutSession *billingUsecases.CreateCheckoutSessionUseCase
	createPortalSession   *billingUsecases.CreatePortalSessionUseCase
}

func (c *Container) newUseCases() *allUseCases {
	r, s := c.repos, c.svcs
	siteURL := c.cfg.Server.SiteURL

	return &allUseCases{
		submitGeneration: genUsecases.NewSubmitGenerationUseCase(
			s.usage, s.gateway, r.projectRepo, r.imageRepo, r.videoRepo,
			c.log.Named("generation.submit"),
		),
		getGenerationStatus: genUsecases.NewGetGenerationStatusUseCase(
			s.gateway, r.videoRepo, r.projectRepo, s.usage, s.assets, s.fetcher, s.storage, s.txManager,
			c.log.Named("generation.status"),
		),
		listProjects: genUsecases.NewListProjectsUseCase(r.projectRepo, r.imageRepo, r.videoRepo, c.log.Named("projects")),
		getProject:   genUsecases.NewGetProjectUseCase(r.projectRepo, r.imageRepo, r.videoRepo, c.log.Named("projects")),

		handleStripeWebhook: billingUsecases.NewHandleStripeWebhookUseCase(
			s.webhooks, s.stripe, r.subscriptionRepo, r.eventRepo, s.usage, s.policy, s.notifier, s.txManager,
			c.log.Named("billing.webhook"),
		),
		createCheckoutSession: billingUsecases.NewCreateCheckoutSessionUseCase(s.stripe, s.usage, s.policy, siteURL, c.log.Named("billing.checkout")),
		createPortalSession:   billingUsecases.NewCreatePortalSessionUseCase(s.stripe, s.usage, siteURL, c.log.Named("billing.portal")),
	}
}
