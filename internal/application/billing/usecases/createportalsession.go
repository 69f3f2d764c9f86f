package usecases

import (
	"context"
	"strings"

	"github.com/reelpop-inc/reelpop/internal/application/billing/provider"
	"github.com/reelpop-inc/reelpop/internal/shared/errors"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

type CreatePortalSessionUseCase struct {
	stripe  provider.StripeClient
	ledger  UsageLedger
	siteURL string
	logger  logger.Interface
}

func NewCreatePortalSessionUseCase(
	stripe provider.StripeClient,
	ledger UsageLedger,
	siteURL string,
	logger logger.Interface,
) *CreatePortalSessionUseCase {
	return &CreatePortalSessionUseCase{
		stripe:  stripe,
		ledger:  ledger,
		siteURL: strings.TrimRight(siteURL, "/"),
		logger:  logger,
	}
}

// Execute opens the billing portal for users that completed a checkout.
func (uc *CreatePortalSessionUseCase) Execute(ctx context.Context, userID string) (*SessionResult, error) {
	if userID == "" {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	sub, err := uc.ledger.GetSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub == nil || !sub.HasCustomer() {
		return nil, errors.NewNotFoundError("no billing account found")
	}

	url, err := uc.stripe.CreatePortalSession(ctx, *sub.StripeCustomerID(), uc.siteURL+"/dashboard")
	if err != nil {
		uc.logger.Errorw("failed to create portal session", "user_id", userID, "error", err)
		return nil, errors.NewUpstreamError("failed to create billing portal session")
	}
	return &SessionResult{URL: url}, nil
}
