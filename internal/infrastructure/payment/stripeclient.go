package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"github.com/reelpop-inc/reelpop/internal/application/billing/provider"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

type StripeClient struct {
	api    *client.API
	logger logger.Interface
}

// NewStripeClient builds an API client. A nil backends uses Stripe's
// default endpoints.
func NewStripeClient(secretKey string, backends *stripe.Backends, logger logger.Interface) *StripeClient {
	return &StripeClient{
		api:    client.New(secretKey, backends),
		logger: logger,
	}
}

func (c *StripeClient) GetSubscriptionPeriod(ctx context.Context, subscriptionID string) (*provider.SubscriptionPeriod, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := c.api.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		c.logger.Errorw("failed to get stripe subscription", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("stripe: failed to get subscription: %w", err)
	}
	return &provider.SubscriptionPeriod{
		Start: unixTime(sub.CurrentPeriodStart),
		End:   unixTime(sub.CurrentPeriodEnd),
	}, nil
}

func (c *StripeClient) CreateCheckoutSession(ctx context.Context, req provider.CheckoutRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	} else if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.AddMetadata(MetadataUserID, req.UserID)
	params.AddMetadata(MetadataPlan, req.Plan)

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		c.logger.Errorw("failed to create stripe checkout session", "user_id", req.UserID, "error", err)
		return "", fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}
	return session.URL, nil
}

func (c *StripeClient) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	session, err := c.api.BillingPortalSessions.New(params)
	if err != nil {
		c.logger.Errorw("failed to create stripe portal session", "customer_id", customerID, "error", err)
		return "", fmt.Errorf("stripe: failed to create portal session: %w", err)
	}
	return session.URL, nil
}
