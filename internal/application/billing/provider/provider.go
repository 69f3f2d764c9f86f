// Package provider defines the ports to the payment provider and to the
// customer notification channel used by the billing use cases.
package provider

import (
	"context"
	"time"

	"github.com/reelpop-inc/reelpop/internal/domain/billing"
)

// SubscriptionPeriod is the current billing cycle of a provider subscription.
type SubscriptionPeriod struct {
	Start *time.Time
	End   *time.Time
}

// CheckoutRequest starts a subscription checkout. Exactly one of CustomerID
// and CustomerEmail is set.
type CheckoutRequest struct {
	PriceID       string
	CustomerID    string
	CustomerEmail string
	UserID        string
	Plan          string
	SuccessURL    string
	CancelURL     string
}

type StripeClient interface {
	GetSubscriptionPeriod(ctx context.Context, subscriptionID string) (*SubscriptionPeriod, error)
	// CreateCheckoutSession returns the hosted checkout URL.
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error)
	// CreatePortalSession returns the hosted billing portal URL.
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
}

// WebhookDecoder authenticates raw webhook deliveries and decodes them into
// billing events.
type WebhookDecoder interface {
	Verify(payload []byte, signature string) (*billing.Envelope, error)
	Decode(envelope *billing.Envelope) (*billing.Event, error)
}

// DunningNotifier tells a customer that a renewal payment failed.
type DunningNotifier interface {
	NotifyPaymentFailed(ctx context.Context, invoice *billing.Invoice) error
}
