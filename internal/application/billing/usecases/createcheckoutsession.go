package usecases

import (
	"context"
	"strings"

	"github.com/reelpop-inc/reelpop/internal/application/billing/provider"
	"github.com/reelpop-inc/reelpop/internal/application/usage"
	vo "github.com/reelpop-inc/reelpop/internal/domain/subscription/valueobjects"
	"github.com/reelpop-inc/reelpop/internal/shared/errors"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
	"github.com/reelpop-inc/reelpop/internal/shared/utils"
)

type CreateCheckoutSessionCommand struct {
	UserID string `json:"-"`
	Email  string `json:"-"`
	Plan   string `json:"plan" validate:"required"`
}

type SessionResult struct {
	URL string `json:"url"`
}

type CreateCheckoutSessionUseCase struct {
	stripe  provider.StripeClient
	ledger  UsageLedger
	policy  *usage.PlanPolicy
	siteURL string
	logger  logger.Interface
}

func NewCreateCheckoutSessionUseCase(
	stripe provider.StripeClient,
	ledger UsageLedger,
	policy *usage.PlanPolicy,
	siteURL string,
	logger logger.Interface,
) *CreateCheckoutSessionUseCase {
	return &CreateCheckoutSessionUseCase{
		stripe:  stripe,
		ledger:  ledger,
		policy:  policy,
		siteURL: strings.TrimRight(siteURL, "/"),
		logger:  logger,
	}
}

func (uc *CreateCheckoutSessionUseCase) Execute(ctx context.Context, cmd CreateCheckoutSessionCommand) (*SessionResult, error) {
	if cmd.UserID == "" {
		return nil, errors.NewUnauthorizedError("authentication required")
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	plan, ok := vo.ParsePlan(cmd.Plan)
	if !ok || !plan.IsPaid() {
		return nil, errors.NewValidationError("invalid plan", cmd.Plan)
	}
	priceID, ok := uc.policy.PriceForPlan(plan)
	if !ok {
		return nil, errors.NewValidationError("plan is not available for purchase", cmd.Plan)
	}

	sub, err := uc.ledger.GetSubscription(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	req := provider.CheckoutRequest{
		PriceID:    priceID,
		UserID:     cmd.UserID,
		Plan:       plan.String(),
		SuccessURL: uc.siteURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  uc.siteURL + "/checkout/cancel",
	}
	if sub != nil && sub.HasCustomer() {
		req.CustomerID = *sub.StripeCustomerID()
	} else {
		req.CustomerEmail = cmd.Email
	}

	url, err := uc.stripe.CreateCheckoutSession(ctx, req)
	if err != nil {
		uc.logger.Errorw("failed to create checkout session", "user_id", cmd.UserID, "plan", plan, "error", err)
		return nil, errors.NewUpstreamError("failed to create checkout session")
	}

	uc.logger.Infow("checkout session created", "user_id", cmd.UserID, "plan", plan)
	return &SessionResult{URL: url}, nil
}
