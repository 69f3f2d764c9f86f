package handlers

import (
	"context"

	billingUsecases "github.com/reelpop-inc/reelpop/internal/application/billing/usecases"
	"github.com/reelpop-inc/reelpop/internal/application/generation/dto"
	generationUsecases "github.com/reelpop-inc/reelpop/internal/application/generation/usecases"
	"github.com/reelpop-inc/reelpop/internal/application/usage"
)

// Use case interfaces consumed by the handlers

type submitGenerationUseCase interface {
	Execute(ctx context.Context, cmd generationUsecases.SubmitGenerationCommand) (*dto.SubmitGenerationResult, error)
}

type getGenerationStatusUseCase interface {
	Execute(ctx context.Context, query generationUsecases.GetGenerationStatusQuery) (*dto.GenerationStatusResult, error)
}

type listProjectsUseCase interface {
	Execute(ctx context.Context, userID string) ([]*dto.ProjectDTO, error)
}

type getProjectUseCase interface {
	Execute(ctx context.Context, query generationUsecases.GetProjectQuery) (*dto.ProjectDTO, error)
}

type subscriptionService interface {
	Overview(ctx context.Context, userID string) (*usage.SubscriptionOverview, error)
	CheckVideoLimit(ctx context.Context, userID string) (*usage.LimitResult, error)
	EnsureFreeSubscription(ctx context.Context, userID string) error
}

type createCheckoutSessionUseCase interface {
	Execute(ctx context.Context, cmd billingUsecases.CreateCheckoutSessionCommand) (*billingUsecases.SessionResult, error)
}

type createPortalSessionUseCase interface {
	Execute(ctx context.Context, userID string) (*billingUsecases.SessionResult, error)
}

type handleStripeWebhookUseCase interface {
	Execute(ctx context.Context, cmd billingUsecases.HandleStripeWebhookCommand) (*billingUsecases.WebhookResult, error)
}
