// Package payment adapts Stripe to the billing ports: webhook verification
// and decoding, and the API calls for checkout, portal and subscription lookups.
package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/reelpop-inc/reelpop/internal/domain/billing"
)

var ErrWebhookSecretMissing = errors.New("stripe webhook secret is not configured")

// Metadata keys written on checkout sessions and read back from webhooks.
const (
	MetadataUserID = "user_id"
	MetadataPlan   = "plan"
)

type WebhookDecoder struct {
	secret string
}

func NewWebhookDecoder(secret string) *WebhookDecoder {
	return &WebhookDecoder{secret: secret}
}

// Verify checks the Stripe-Signature header. Events from other API versions
// are accepted; Decode reads both the legacy and the 2025-03-31 payload shapes.
func (d *WebhookDecoder) Verify(payload []byte, signature string) (*billing.Envelope, error) {
	if d.secret == "" {
		return nil, ErrWebhookSecretMissing
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, d.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify webhook: %w", err)
	}

	env := &billing.Envelope{ID: event.ID, Type: string(event.Type)}
	if event.Data != nil {
		env.Payload = event.Data.Raw
	}
	return env, nil
}

// Decode maps a verified event onto the billing event variant. Types the
// billing core does not handle decode to EventUnknown.
func (d *WebhookDecoder) Decode(env *billing.Envelope) (*billing.Event, error) {
	event := &billing.Event{ID: env.ID, Type: env.Type}

	switch stripe.EventType(env.Type) {
	case stripe.EventTypeCheckoutSessionCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(env.Payload, &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal checkout session: %w", err)
		}
		event.Kind = billing.EventCheckoutCompleted
		event.Checkout = &billing.CheckoutCompleted{
			UserID:         session.Metadata[MetadataUserID],
			Plan:           session.Metadata[MetadataPlan],
			CustomerID:     customerID(session.Customer),
			SubscriptionID: subscriptionID(session.Subscription),
		}

	case stripe.EventTypeCustomerSubscriptionUpdated, stripe.EventTypeCustomerSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(env.Payload, &sub); err != nil {
			return nil, fmt.Errorf("failed to unmarshal subscription: %w", err)
		}
		event.Kind = billing.EventSubscriptionUpdated
		if stripe.EventType(env.Type) == stripe.EventTypeCustomerSubscriptionDeleted {
			event.Kind = billing.EventSubscriptionDeleted
		}
		start, end := sub.CurrentPeriodStart, sub.CurrentPeriodEnd
		if start == 0 && end == 0 {
			var items itemPeriods
			if err := json.Unmarshal(env.Payload, &items); err != nil {
				return nil, fmt.Errorf("failed to unmarshal subscription items: %w", err)
			}
			start, end = items.first()
		}
		event.Subscription = &billing.SubscriptionChange{
			SubscriptionID:    sub.ID,
			Status:            string(sub.Status),
			PriceID:           firstPriceID(&sub),
			PeriodStart:       unixTime(start),
			PeriodEnd:         unixTime(end),
			CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		}

	case stripe.EventTypeInvoicePaymentSucceeded, stripe.EventTypeInvoicePaymentFailed:
		var inv stripe.Invoice
		if err := json.Unmarshal(env.Payload, &inv); err != nil {
			return nil, fmt.Errorf("failed to unmarshal invoice: %w", err)
		}
		event.Kind = billing.EventInvoicePaymentSucceeded
		if stripe.EventType(env.Type) == stripe.EventTypeInvoicePaymentFailed {
			event.Kind = billing.EventInvoicePaymentFailed
		}
		subID := subscriptionID(inv.Subscription)
		if subID == "" {
			var parent invoiceParent
			if err := json.Unmarshal(env.Payload, &parent); err != nil {
				return nil, fmt.Errorf("failed to unmarshal invoice parent: %w", err)
			}
			subID = parent.subscriptionID()
		}
		event.Invoice = &billing.Invoice{
			ID:               inv.ID,
			SubscriptionID:   subID,
			CustomerEmail:    inv.CustomerEmail,
			BillingReason:    string(inv.BillingReason),
			AmountDue:        inv.AmountDue,
			Currency:         string(inv.Currency),
			HostedInvoiceURL: inv.HostedInvoiceURL,
		}

	default:
		event.Kind = billing.EventUnknown
	}

	return event, nil
}

// itemPeriods reads the billing period from the first subscription item,
// where API versions from 2025-03-31 carry it.
type itemPeriods struct {
	Items struct {
		Data []struct {
			CurrentPeriodStart int64 `json:"current_period_start"`
			CurrentPeriodEnd   int64 `json:"current_period_end"`
		} `json:"data"`
	} `json:"items"`
}

func (p itemPeriods) first() (start, end int64) {
	if len(p.Items.Data) == 0 {
		return 0, 0
	}
	return p.Items.Data[0].CurrentPeriodStart, p.Items.Data[0].CurrentPeriodEnd
}

// invoiceParent reads parent.subscription_details.subscription, which
// replaced the top-level invoice subscription in 2025-03-31. The reference
// is either an id or an expanded object.
type invoiceParent struct {
	Parent *struct {
		SubscriptionDetails *struct {
			Subscription *stripe.Subscription `json:"subscription"`
		} `json:"subscription_details"`
	} `json:"parent"`
}

func (p invoiceParent) subscriptionID() string {
	if p.Parent == nil || p.Parent.SubscriptionDetails == nil {
		return ""
	}
	return subscriptionID(p.Parent.SubscriptionDetails.Subscription)
}

func customerID(c *stripe.Customer) string {
	if c == nil {
		return ""
	}
	return c.ID
}

func subscriptionID(s *stripe.Subscription) string {
	if s == nil {
		return ""
	}
	return s.ID
}

func firstPriceID(sub *stripe.Subscription) string {
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return ""
	}
	item := sub.Items.Data[0]
	if item == nil || item.Price == nil {
		return ""
	}
	return item.Price.ID
}

func unixTime(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
